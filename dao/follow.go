package dao

import (
	"Moments/models"
	"Moments/types"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowDAO struct {
	Repo[models.Follow]
}

func NewFollowDAO(db *gorm.DB) *FollowDAO {
	return &FollowDAO{Repo: NewRepo[models.Follow](db)}
}

// Insert 写入关注关系, 已存在时不做任何事, 返回是否新插入
func (d *FollowDAO) Insert(ctx context.Context, followerID, followedID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{
			FollowerID: followerID,
			FollowedID: followedID,
			CreatedAt:  time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// Delete 返回是否删除了记录
func (d *FollowDAO) Delete(ctx context.Context, followerID, followedID uint64) (bool, error) {
	res := d.Db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (d *FollowDAO) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	return d.IsExist(ctx, "follower_id = ? AND followed_id = ?", followerID, followedID)
}

// FollowerCount 粉丝数
func (d *FollowDAO) FollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return d.Count(ctx, "followed_id = ?", userID)
}

// FollowingCount 关注数
func (d *FollowDAO) FollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return d.Count(ctx, "follower_id = ?", userID)
}

// Followers 粉丝列表, 按关注时间倒序
func (d *FollowDAO) Followers(ctx context.Context, userID uint64, page, perPage int) ([]*models.User, types.Pagination, error) {
	return paginate[models.User](ctx, d.Db, page, perPage, false, "f.created_at DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN follow f ON f.follower_id = users.id").Where("f.followed_id = ?", userID)
	})
}

// Following 关注列表, 按关注时间倒序
func (d *FollowDAO) Following(ctx context.Context, userID uint64, page, perPage int) ([]*models.User, types.Pagination, error) {
	return paginate[models.User](ctx, d.Db, page, perPage, false, "f.created_at DESC", func(tx *gorm.DB) *gorm.DB {
		return tx.Joins("JOIN follow f ON f.followed_id = users.id").Where("f.follower_id = ?", userID)
	})
}
