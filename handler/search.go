package handler

import (
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"

	"github.com/gin-gonic/gin"
)

type Search struct {
	SearchService service.ISearchService
}

func (h *Search) RegisterRouter(r gin.IRouter) {
	r.GET("/v1/search", context.Wrap(h.Search))
}

// Search ?q=&category=photo|user|tag&page=
func (h *Search) Search(c *gin.Context) error {
	resp, err := h.SearchService.Search(c.Request.Context(), c.Query("q"), c.DefaultQuery("category", service.SearchPhoto), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}
