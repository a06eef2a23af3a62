package dao

import (
	"Moments/models"
	"Moments/types"
	"context"

	"gorm.io/gorm"
)

const (
	NotificationFilterAll    = "all"
	NotificationFilterUnread = "unread"
)

type NotificationDAO struct {
	Repo[models.Notification]
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{Repo: NewRepo[models.Notification](db)}
}

func (d *NotificationDAO) List(ctx context.Context, receiverID uint64, filter string, page, perPage int) ([]*models.Notification, types.Pagination, error) {
	return d.Paginate(ctx, page, perPage, "created_at DESC, id DESC", func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("receiver_id = ?", receiverID)
		if filter == NotificationFilterUnread {
			tx = tx.Where("is_read = ?", false)
		}
		return tx
	})
}

func (d *NotificationDAO) CountUnread(ctx context.Context, receiverID uint64) (int64, error) {
	return d.Count(ctx, "receiver_id = ? AND is_read = ?", receiverID, false)
}

func (d *NotificationDAO) MarkRead(ctx context.Context, id uint64) error {
	return d.Db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkAllRead 返回被标记的条数
func (d *NotificationDAO) MarkAllRead(ctx context.Context, receiverID uint64) (int64, error) {
	res := d.Db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
