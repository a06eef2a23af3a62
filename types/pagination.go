package types

// Pagination 分页信息
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Clamp 页码超过最后一页时落到最后一页
func (p Pagination) Clamp() Pagination {
	if p.Pages > 0 && p.Page > p.Pages {
		return NewPagination(p.Pages, p.PerPage, p.Total)
	}
	return p
}
