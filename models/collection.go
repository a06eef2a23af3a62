package models

import "time"

// Collection 收藏记录, 主键 (user_id, photo_id)
type Collection struct {
	UserID    uint64    `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	PhotoID   uint64    `gorm:"column:photo_id;primaryKey;autoIncrement:false;index:idx_collection_photo" json:"photo_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Collection) TableName() string {
	return "collection"
}
