package types

import "time"

// ListResp 通用分页列表
type ListResp[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func NewListResp[T any](items []T, p Pagination) *ListResp[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResp[T]{Items: items, Pagination: p}
}

// StateResponse 关注/收藏等状态变更的结果
type StateResponse struct {
	State   bool   `json:"state"`
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type NotificationItem struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type Dashboard struct {
	UserCount        int64 `json:"user_count"`
	LockedUserCount  int64 `json:"locked_user_count"`
	BlockedUserCount int64 `json:"blocked_user_count"`
	PhotoCount       int64 `json:"photo_count"`
	ReportedPhotos   int64 `json:"reported_photos_count"`
	TagCount         int64 `json:"tag_count"`
	CommentCount     int64 `json:"comment_count"`
	ReportedComments int64 `json:"reported_comments_count"`
	PendingMailCount int64 `json:"pending_mail_count"`
	FailedMailCount  int64 `json:"failed_mail_count"`
}

type SearchResult struct {
	Category   string       `json:"category"`
	Query      string       `json:"q"`
	Users      []*UserBrief `json:"users,omitempty"`
	Photos     []*PhotoItem `json:"photos,omitempty"`
	Tags       []*TagItem   `json:"tags,omitempty"`
	Pagination Pagination   `json:"pagination"`
}
