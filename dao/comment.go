package dao

import (
	"Moments/models"
	"Moments/types"
	"context"

	"gorm.io/gorm"
)

type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{Repo: NewRepo[models.Comment](db)}
}

// ListByPhoto 照片评论, 按时间正序
func (d *CommentDAO) ListByPhoto(ctx context.Context, photoID uint64, page, perPage int) ([]*models.Comment, types.Pagination, error) {
	return d.Paginate(ctx, page, perPage, "comment.created_at ASC, comment.id ASC", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("comment.photo_id = ?", photoID)
	})
}

func (d *CommentDAO) CountByPhoto(ctx context.Context, photoID uint64) (int64, error) {
	return d.Count(ctx, "photo_id = ?", photoID)
}

func (d *CommentDAO) IncrFlag(ctx context.Context, commentID uint64) error {
	res := d.Db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn("flag", gorm.Expr("flag + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *CommentDAO) Manage(ctx context.Context, order string, page, perPage int) ([]*models.Comment, types.Pagination, error) {
	sort := "comment.created_at DESC, comment.id DESC"
	if order == OrderByFlag {
		sort = "comment.flag DESC, comment.created_at DESC"
	}
	return d.PaginateClamped(ctx, page, perPage, sort, nil)
}

// DeleteTree 删除评论及其所有回复, 返回删除条数
func (d *CommentDAO) DeleteTree(ctx context.Context, commentID uint64) (int, error) {
	n := 0
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := replyTree(tx, []uint64{commentID})
		if err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		n = int(res.RowsAffected)
		return nil
	})
	return n, err
}

// replyTree roots 以及所有直接或间接回复它们的评论 ID
func replyTree(tx *gorm.DB, roots []uint64) ([]uint64, error) {
	all := make([]uint64, 0, len(roots))
	seen := make(map[uint64]bool, len(roots))
	frontier := roots
	for len(frontier) > 0 {
		next := make([]uint64, 0)
		for _, id := range frontier {
			if !seen[id] {
				seen[id] = true
				all = append(all, id)
			}
		}
		var children []uint64
		if err := tx.Model(&models.Comment{}).Where("replied_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		for _, id := range children {
			if !seen[id] {
				next = append(next, id)
			}
		}
		frontier = next
	}
	return all, nil
}

func deleteCommentTree(tx *gorm.DB, roots []uint64) error {
	if len(roots) == 0 {
		return nil
	}
	ids, err := replyTree(tx, roots)
	if err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
}
