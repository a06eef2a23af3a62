package dao

import (
	"Moments/models"
	"Moments/types"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagDAO struct {
	Repo[models.Tag]
}

func NewTagDAO(db *gorm.DB) *TagDAO {
	return &TagDAO{Repo: NewRepo[models.Tag](db)}
}

// TagStat 标签及其照片数
type TagStat struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	PhotoCount int64  `json:"photo_count"`
}

// FindOrCreate 按名称查找, 不存在则创建, 并发创建同名标签时以先写入的为准
func (d *TagDAO) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name}
	if err := ensureByName(d.Db.WithContext(ctx), &tag, name); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Attach 建立照片与标签的关联, 返回是否新插入
func (d *TagDAO) Attach(ctx context.Context, photoID, tagID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PhotoTag{PhotoID: photoID, TagID: tagID})
	return res.RowsAffected > 0, res.Error
}

// Detach 解除关联, 标签不再关联任何照片时删除标签. 返回标签是否被删除
func (d *TagDAO) Detach(ctx context.Context, photoID, tagID uint64) (bool, error) {
	removed := false
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("photo_id = ? AND tag_id = ?", photoID, tagID).Delete(&models.PhotoTag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var count int64
		if err := tx.Model(&models.PhotoTag{}).Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Delete(&models.Tag{}, tagID).Error; err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

func (d *TagDAO) CountPhotos(ctx context.Context, tagID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).Model(&models.PhotoTag{}).Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}

// TagsOfPhoto 照片的标签
func (d *TagDAO) TagsOfPhoto(ctx context.Context, photoID uint64) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0)
	err := d.Db.WithContext(ctx).
		Select("tag.*").
		Joins("JOIN tagging pt ON pt.tag_id = tag.id").
		Where("pt.photo_id = ?", photoID).
		Order("tag.id").
		Find(&tags).Error
	return tags, err
}

// Popular 关联照片最多的标签
func (d *TagDAO) Popular(ctx context.Context, limit int) ([]*TagStat, error) {
	stats := make([]*TagStat, 0, limit)
	err := d.Db.WithContext(ctx).
		Model(&models.Tag{}).
		Select("tag.id AS id, tag.name AS name, COUNT(pt.photo_id) AS photo_count").
		Joins("JOIN tagging pt ON pt.tag_id = tag.id").
		Group("tag.id, tag.name").
		Order("photo_count DESC, tag.id").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

func (d *TagDAO) Search(ctx context.Context, q string, page, perPage int) ([]*models.Tag, types.Pagination, error) {
	like := containsPattern(q)
	return d.Paginate(ctx, page, perPage, "tag.id DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("tag.name LIKE ? ESCAPE '!'", like)
	})
}

func (d *TagDAO) Manage(ctx context.Context, page, perPage int) ([]*models.Tag, types.Pagination, error) {
	return d.PaginateClamped(ctx, page, perPage, "tag.id DESC", nil)
}

// DeleteCascade 删除标签及其全部关联
func (d *TagDAO) DeleteCascade(ctx context.Context, tagID uint64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Tag{}, tagID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("tag_id = ?", tagID).Delete(&models.PhotoTag{}).Error
	})
}
