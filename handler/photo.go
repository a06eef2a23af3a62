package handler

import (
	"Moments/config"
	"Moments/middleware"
	"Moments/models"
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"
	"Moments/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Photo struct {
	Config         *config.Config
	Authenticator  *middleware.Authenticator
	Roles          service.IRoleService
	PhotoService   service.IPhotoService
	CollectService service.ICollectService
	TagService     service.ITagService
}

func (h *Photo) RegisterRouter(r gin.IRouter) {
	authorize := h.Authenticator.Required()
	optional := h.Authenticator.Optional()
	confirmed := middleware.ConfirmRequired()

	g := r.Group("/v1/photos")
	g.GET("/feed", authorize, context.Wrap(h.Feed))
	g.GET("/explore", context.Wrap(h.Explore))
	g.GET("/share/:code", optional, context.Wrap(h.ByShareCode))
	g.POST("", authorize, confirmed, middleware.PermissionRequired(h.Roles, models.PermUpload), context.Wrap(h.Upload))

	g.GET("/:id", optional, context.Wrap(h.Show))
	g.GET("/:id/next", context.Wrap(h.Next))
	g.GET("/:id/previous", context.Wrap(h.Previous))
	g.GET("/:id/share", context.Wrap(h.Share))
	g.PUT("/:id/description", authorize, context.Wrap(h.EditDescription))
	g.POST("/:id/set-comment", authorize, context.Wrap(h.SetComment))
	g.POST("/:id/report", authorize, confirmed, context.Wrap(h.Report))
	g.DELETE("/:id", authorize, context.Wrap(h.Delete))

	g.POST("/:id/collect", authorize, confirmed, middleware.PermissionRequired(h.Roles, models.PermCollect), context.Wrap(h.Collect))
	g.DELETE("/:id/collect", authorize, context.Wrap(h.Uncollect))
	g.GET("/:id/collectors", context.Wrap(h.Collectors))
	g.GET("/:id/collectors/count", context.Wrap(h.CollectorsCount))

	g.POST("/:id/tags", authorize, context.Wrap(h.AddTags))
	g.POST("/:id/tags/suggest", authorize, context.Wrap(h.SuggestTags))
	g.DELETE("/:id/tags/:tag_id", authorize, context.Wrap(h.RemoveTag))
}

func (h *Photo) Feed(c *gin.Context) error {
	resp, err := h.PhotoService.Feed(c.Request.Context(), context.CurrentUser(c), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Photo) Explore(c *gin.Context) error {
	items, err := h.PhotoService.Explore(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, items)
	return nil
}

// Upload multipart 字段 file 为图片, description 为描述
func (h *Photo) Upload(c *gin.Context) error {
	name, f, err := formFile(c, "file")
	if err != nil {
		return err
	}
	defer f.Close()

	photo, err := h.PhotoService.Upload(c.Request.Context(), context.CurrentUser(c), name, f, c.PostForm("description"))
	if err != nil {
		return bizError(err)
	}
	detail, err := h.PhotoService.Detail(c.Request.Context(), context.CurrentUser(c), photo.ID)
	if err != nil {
		return bizError(err)
	}
	c.JSON(http.StatusCreated, response.Response{Code: 0, Msg: "ok", Data: detail})
	return nil
}

func (h *Photo) Show(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.PhotoService.Detail(c.Request.Context(), context.CurrentUser(c), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, detail)
	return nil
}

func (h *Photo) ByShareCode(c *gin.Context) error {
	photo, err := h.PhotoService.ByShareCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		return bizError(err)
	}
	detail, err := h.PhotoService.Detail(c.Request.Context(), context.CurrentUser(c), photo.ID)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, detail)
	return nil
}

func (h *Photo) Share(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	code, err := h.PhotoService.ShareCode(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.ShareResponse{
		Code: code,
		URL:  h.Config.App.BaseURL + "/api/v1/photos/share/" + code,
	})
	return nil
}

func (h *Photo) Next(c *gin.Context) error {
	return h.neighbor(c, true)
}

func (h *Photo) Previous(c *gin.Context) error {
	return h.neighbor(c, false)
}

// neighbor 同一作者的下一张(更早)或上一张(更新)照片
func (h *Photo) neighbor(c *gin.Context, older bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	find := h.PhotoService.Previous
	if older {
		find = h.PhotoService.Next
	}
	next, err := find(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.NeighborResponse{ID: next})
	return nil
}

func (h *Photo) EditDescription(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.PhotoService.EditDescription(c.Request.Context(), context.CurrentUser(c), id, req.Description); err != nil {
		return bizError(err)
	}
	response.Message(c, "Description updated.", nil)
	return nil
}

func (h *Photo) SetComment(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	enabled, err := h.PhotoService.ToggleComment(c.Request.Context(), context.CurrentUser(c), id)
	if err != nil {
		return bizError(err)
	}
	msg := "Comment enabled."
	if !enabled {
		msg = "Comment disabled."
	}
	response.Message(c, msg, types.StateResponse{State: enabled, Changed: true, Message: msg})
	return nil
}

func (h *Photo) Report(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.PhotoService.Report(c.Request.Context(), context.CurrentUser(c), id); err != nil {
		return bizError(err)
	}
	response.Message(c, "Photo reported.", nil)
	return nil
}

func (h *Photo) Delete(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.PhotoService.Delete(c.Request.Context(), context.CurrentUser(c), id); err != nil {
		return bizError(err)
	}
	response.Message(c, "Photo deleted.", nil)
	return nil
}

// Collect 收藏照片, 重复收藏返回 200 并提示
func (h *Photo) Collect(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	changed, err := h.CollectService.Collect(c.Request.Context(), context.CurrentUser(c), id)
	if err != nil {
		return bizError(err)
	}
	msg := "Photo collected."
	if !changed {
		msg = "Already collected."
	}
	response.Message(c, msg, types.StateResponse{State: true, Changed: changed, Message: msg})
	return nil
}

func (h *Photo) Uncollect(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	changed, err := h.CollectService.Uncollect(c.Request.Context(), context.CurrentUser(c), id)
	if err != nil {
		return bizError(err)
	}
	msg := "Collect canceled."
	if !changed {
		msg = "Not collect yet."
	}
	response.Message(c, msg, types.StateResponse{State: false, Changed: changed, Message: msg})
	return nil
}

func (h *Photo) Collectors(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.CollectService.Collectors(c.Request.Context(), id, page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Photo) CollectorsCount(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.PhotoService.Get(c.Request.Context(), id); err != nil {
		return bizError(err)
	}
	n, err := h.CollectService.CollectorsCount(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.CountResponse{Count: n})
	return nil
}

// AddTags 空白分隔的多个标签
func (h *Photo) AddTags(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	tags, err := h.TagService.AddTags(c.Request.Context(), context.CurrentUser(c), id, req.Tags)
	if err != nil {
		return bizError(err)
	}
	response.Message(c, "Tag added.", tags)
	return nil
}

func (h *Photo) RemoveTag(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tagID, err := paramID(c, "tag_id")
	if err != nil {
		return err
	}
	removed, err := h.TagService.RemoveTag(c.Request.Context(), context.CurrentUser(c), id, tagID)
	if err != nil {
		return bizError(err)
	}
	response.Message(c, "Tag deleted.", gin.H{"tag_removed": removed})
	return nil
}

func (h *Photo) SuggestTags(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tags, err := h.PhotoService.SuggestTags(c.Request.Context(), context.CurrentUser(c), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.SuggestTagsResponse{Tags: tags})
	return nil
}
