package models

import "time"

type Notification struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Message    string    `gorm:"column:message;type:text;not null" json:"message"`
	IsRead     bool      `gorm:"column:is_read;not null" json:"is_read"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index:idx_notification_created_at" json:"created_at"`
	ReceiverID uint64    `gorm:"column:receiver_id;not null;index:idx_notification_receiver" json:"receiver_id"`
}

func (Notification) TableName() string {
	return "notification"
}
