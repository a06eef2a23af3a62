package dao

import (
	"Moments/models"
	"Moments/types"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionDAO struct {
	Repo[models.Collection]
}

func NewCollectionDAO(db *gorm.DB) *CollectionDAO {
	return &CollectionDAO{Repo: NewRepo[models.Collection](db)}
}

// Insert 收藏, 已收藏时不做任何事, 返回是否新插入
func (d *CollectionDAO) Insert(ctx context.Context, userID, photoID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Collection{
			UserID:    userID,
			PhotoID:   photoID,
			CreatedAt: time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (d *CollectionDAO) Delete(ctx context.Context, userID, photoID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Delete(&models.Collection{})
	return res.RowsAffected > 0, res.Error
}

func (d *CollectionDAO) IsCollecting(ctx context.Context, userID, photoID uint64) (bool, error) {
	return d.IsExist(ctx, "user_id = ? AND photo_id = ?", userID, photoID)
}

func (d *CollectionDAO) CountByPhoto(ctx context.Context, photoID uint64) (int64, error) {
	return d.Count(ctx, "photo_id = ?", photoID)
}

func (d *CollectionDAO) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	return d.Count(ctx, "user_id = ?", userID)
}

// Collectors 收藏了照片的用户, 按收藏时间倒序
func (d *CollectionDAO) Collectors(ctx context.Context, photoID uint64, page, perPage int) ([]*models.User, types.Pagination, error) {
	return paginate[models.User](ctx, d.Db, page, perPage, false, "c.created_at DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN collection c ON c.user_id = users.id").Where("c.photo_id = ?", photoID)
	})
}

// CollectedPhotos 用户收藏的照片, 按收藏时间倒序
func (d *CollectionDAO) CollectedPhotos(ctx context.Context, userID uint64, page, perPage int) ([]*models.Photo, types.Pagination, error) {
	return paginate[models.Photo](ctx, d.Db, page, perPage, false, "c.created_at DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN collection c ON c.photo_id = photo.id").Where("c.user_id = ?", userID)
	})
}
