package types

import "time"

type CommentItem struct {
	ID        uint64     `json:"id"`
	Body      string     `json:"body"`
	Flag      int        `json:"flag"`
	CreatedAt time.Time  `json:"created_at"`
	PhotoID   uint64     `json:"photo_id"`
	RepliedID *uint64    `json:"replied_id,omitempty"`
	Author    *UserBrief `json:"author,omitempty"`
	// 被回复评论的作者
	RepliedAuthor *UserBrief `json:"replied_author,omitempty"`
}

type CommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
	// ReplyTo 回复的评论 ID, 为 0 时是顶级评论
	ReplyTo uint64 `json:"reply_to"`
}
