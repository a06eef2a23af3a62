package models

import "time"

// Follow 关注关系, 主键 (follower_id, followed_id)
type Follow struct {
	FollowerID uint64    `gorm:"column:follower_id;primaryKey;autoIncrement:false" json:"follower_id"`
	FollowedID uint64    `gorm:"column:followed_id;primaryKey;autoIncrement:false;index:idx_follow_followed" json:"followed_id"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Follow) TableName() string {
	return "follow"
}
