package dao

import (
	"Moments/models"
	"Moments/types"
	"context"

	"gorm.io/gorm"
)

// 后台照片列表排序
const (
	OrderByFlag = "by_flag"
	OrderByTime = "by_time"
)

// 标签页照片排序
const (
	OrderByCollects = "by_collects"
)

type PhotoDAO struct {
	Repo[models.Photo]
}

func NewPhotoDAO(db *gorm.DB) *PhotoDAO {
	return &PhotoDAO{Repo: NewRepo[models.Photo](db)}
}

// Feed 自己和已关注用户的照片, 按时间倒序
func (d *PhotoDAO) Feed(ctx context.Context, userID uint64, page, perPage int) ([]*models.Photo, types.Pagination, error) {
	return d.Paginate(ctx, page, perPage, "photo.created_at DESC, photo.id DESC", func(tx *gorm.DB) *gorm.DB {
		following := d.Db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID)
		return tx.Where("photo.author_id = ? OR photo.author_id IN (?)", userID, following)
	})
}

func (d *PhotoDAO) ByAuthor(ctx context.Context, authorID uint64, page, perPage int) ([]*models.Photo, types.Pagination, error) {
	return d.Paginate(ctx, page, perPage, "photo.created_at DESC, photo.id DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("photo.author_id = ?", authorID)
	})
}

func (d *PhotoDAO) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	return d.Count(ctx, "author_id = ?", authorID)
}

// Random 随机取 n 张照片
func (d *PhotoDAO) Random(ctx context.Context, n int) ([]*models.Photo, error) {
	fn := "RANDOM()"
	if d.Db.Dialector.Name() == "mysql" {
		fn = "RAND()"
	}
	photos := make([]*models.Photo, 0, n)
	err := d.Db.WithContext(ctx).Order(fn).Limit(n).Find(&photos).Error
	return photos, err
}

// Next 同一作者更早的一张, 与列表顺序一致按 created_at 排序, id 兜底
func (d *PhotoDAO) Next(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	var p models.Photo
	err := d.Db.WithContext(ctx).
		Where("author_id = ?", photo.AuthorID).
		Where("created_at < ? OR (created_at = ? AND id < ?)", photo.CreatedAt, photo.CreatedAt, photo.ID).
		Order("created_at DESC, id DESC").
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Previous 同一作者更新的一张
func (d *PhotoDAO) Previous(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	var p models.Photo
	err := d.Db.WithContext(ctx).
		Where("author_id = ?", photo.AuthorID).
		Where("created_at > ? OR (created_at = ? AND id > ?)", photo.CreatedAt, photo.CreatedAt, photo.ID).
		Order("created_at ASC, id ASC").
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrFlag 举报计数加一
func (d *PhotoDAO) IncrFlag(ctx context.Context, photoID uint64) error {
	res := d.Db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("id = ?", photoID).
		UpdateColumn("flag", gorm.Expr("flag + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ByTag 标签下的照片, order 为 by_time 或 by_collects
func (d *PhotoDAO) ByTag(ctx context.Context, tagID uint64, order string, page, perPage int) ([]*models.Photo, types.Pagination, error) {
	sort := "photo.created_at DESC, photo.id DESC"
	if order == OrderByCollects {
		sort = "(SELECT COUNT(*) FROM collection c WHERE c.photo_id = photo.id) DESC, photo.created_at DESC"
	}
	return d.Paginate(ctx, page, perPage, sort, func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN tagging pt ON pt.photo_id = photo.id").Where("pt.tag_id = ?", tagID)
	})
}

func (d *PhotoDAO) Search(ctx context.Context, q string, page, perPage int) ([]*models.Photo, types.Pagination, error) {
	like := containsPattern(q)
	return d.Paginate(ctx, page, perPage, "photo.id DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("photo.description LIKE ? ESCAPE '!'", like)
	})
}

// Manage 后台照片列表, by_flag 时举报多的在前
func (d *PhotoDAO) Manage(ctx context.Context, order string, page, perPage int) ([]*models.Photo, types.Pagination, error) {
	sort := "photo.created_at DESC, photo.id DESC"
	if order == OrderByFlag {
		sort = "photo.flag DESC, photo.created_at DESC"
	}
	return d.PaginateClamped(ctx, page, perPage, sort, nil)
}

// DeleteCascade 删除照片及其评论, 收藏, 标签关联
func (d *PhotoDAO) DeleteCascade(ctx context.Context, photoID uint64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Photo{}, photoID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("photo_id = ?", photoID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", photoID).Delete(&models.Collection{}).Error; err != nil {
			return err
		}
		return tx.Where("photo_id = ?", photoID).Delete(&models.PhotoTag{}).Error
	})
}
