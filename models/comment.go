package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Body      string    `gorm:"column:body;type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_comment_created_at" json:"created_at"`
	Flag      int       `gorm:"column:flag;not null;default:0" json:"flag"`
	// 被回复的评论, 顶级评论为 NULL
	RepliedID *uint64 `gorm:"column:replied_id;index:idx_comment_replied" json:"replied_id,omitempty"`
	AuthorID  uint64  `gorm:"column:author_id;not null;index:idx_comment_author" json:"author_id"`
	PhotoID   uint64  `gorm:"column:photo_id;not null;index:idx_comment_photo" json:"photo_id"`
}

func (Comment) TableName() string {
	return "comment"
}
