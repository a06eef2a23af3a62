package types

type TagItem struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	PhotoCount int64  `json:"photo_count,omitempty"`
}
