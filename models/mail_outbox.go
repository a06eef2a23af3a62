package models

import (
	"time"

	"gorm.io/datatypes"
)

// 发件箱状态
const (
	MailPending int8 = 0
	MailSent    int8 = 1
	MailFailed  int8 = 2
)

// MailOutbox 待发送邮件, 由 Dispatcher 异步投递
type MailOutbox struct {
	ID            int64             `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	To            string            `gorm:"column:to_addr;type:varchar(254);not null" json:"to"`
	Subject       string            `gorm:"column:subject;type:varchar(255);not null" json:"subject"`
	Template      string            `gorm:"column:template;type:varchar(32);not null" json:"template"`
	Data          datatypes.JSONMap `gorm:"column:data" json:"data"`
	Status        int8              `gorm:"column:status;not null;default:0;index:idx_outbox_due,priority:1" json:"status"`
	Attempts      int               `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError     string            `gorm:"column:last_error;type:text" json:"last_error"`
	NextAttemptAt time.Time         `gorm:"column:next_attempt_at;not null;index:idx_outbox_due,priority:2" json:"next_attempt_at"`
	SentAt        *time.Time        `gorm:"column:sent_at" json:"sent_at,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (MailOutbox) TableName() string {
	return "mail_outbox"
}
