package dao

import (
	"Moments/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type MailOutboxDAO struct {
	Repo[models.MailOutbox]
}

func NewMailOutboxDAO(db *gorm.DB) *MailOutboxDAO {
	return &MailOutboxDAO{Repo: NewRepo[models.MailOutbox](db)}
}

// Due 到期待发送的邮件
func (d *MailOutboxDAO) Due(ctx context.Context, now time.Time, limit int) ([]*models.MailOutbox, error) {
	items := make([]*models.MailOutbox, 0, limit)
	err := d.Db.WithContext(ctx).
		Where("status = ? AND next_attempt_at <= ?", models.MailPending, now).
		Order("next_attempt_at").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (d *MailOutboxDAO) MarkSent(ctx context.Context, id int64, attempts int) error {
	now := time.Now()
	return d.UpdateById(ctx, id, map[string]any{
		"status":     models.MailSent,
		"attempts":   attempts,
		"sent_at":    &now,
		"last_error": "",
	})
}

// MarkRetry 记录失败并安排下一次投递
func (d *MailOutboxDAO) MarkRetry(ctx context.Context, id int64, attempts int, next time.Time, errMsg string) error {
	return d.UpdateById(ctx, id, map[string]any{
		"attempts":        attempts,
		"next_attempt_at": next,
		"last_error":      errMsg,
	})
}

func (d *MailOutboxDAO) MarkFailed(ctx context.Context, id int64, attempts int, errMsg string) error {
	return d.UpdateById(ctx, id, map[string]any{
		"status":     models.MailFailed,
		"attempts":   attempts,
		"last_error": errMsg,
	})
}

func (d *MailOutboxDAO) CountByStatus(ctx context.Context, status int8) (int64, error) {
	return d.Count(ctx, "status = ?", status)
}
