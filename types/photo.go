package types

import "time"

type PhotoItem struct {
	ID          uint64     `json:"id"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	URLSmall    string     `json:"url_s"`
	URLMedium   string     `json:"url_m"`
	CanComment  bool       `json:"can_comment"`
	Flag        int        `json:"flag"`
	CreatedAt   time.Time  `json:"created_at"`
	Author      *UserBrief `json:"author,omitempty"`
}

// PhotoDetail 照片详情页
type PhotoDetail struct {
	PhotoItem
	Tags         []*TagItem `json:"tags"`
	CollectCount int64      `json:"collect_count"`
	CommentCount int64      `json:"comment_count"`
	IsCollecting bool       `json:"is_collecting"`
	ShareCode    string     `json:"share_code"`
	CanEdit      bool       `json:"can_edit"`
	CanModerate  bool       `json:"can_moderate"`
}

type DescriptionRequest struct {
	Description string `json:"description" binding:"max=500"`
}

type TagsRequest struct {
	Tags string `json:"tags" binding:"required,max=500"`
}

type SuggestTagsResponse struct {
	Tags []string `json:"tags"`
}

type NeighborResponse struct {
	ID uint64 `json:"id"`
}

type ShareResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}
