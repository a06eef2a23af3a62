package handler

import (
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPopularTags = 10

type Tag struct {
	TagService service.ITagService
}

func (h *Tag) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/tags")
	g.GET("/popular", context.Wrap(h.Popular))
	g.GET("/:id", context.Wrap(h.Show))
}

// Show 标签及其照片, ?order=by_time|by_collects
func (h *Tag) Show(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tag, err := h.TagService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	order := c.DefaultQuery("order", "by_time")
	photos, err := h.TagService.TagPhotos(c.Request.Context(), id, order, page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, gin.H{"tag": tag, "order": order, "photos": photos})
	return nil
}

func (h *Tag) Popular(c *gin.Context) error {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = defaultPopularTags
	}
	tags, err := h.TagService.PopularTags(c.Request.Context(), limit)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, tags)
	return nil
}
