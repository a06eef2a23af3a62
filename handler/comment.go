package handler

import (
	"Moments/middleware"
	"Moments/models"
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"
	"Moments/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Comment struct {
	Authenticator  *middleware.Authenticator
	Roles          service.IRoleService
	CommentService service.ICommentService
}

func (h *Comment) RegisterRouter(r gin.IRouter) {
	authorize := h.Authenticator.Required()
	canComment := middleware.PermissionRequired(h.Roles, models.PermComment)

	r.GET("/v1/photos/:id/comments", context.Wrap(h.List))
	r.POST("/v1/photos/:id/comments", authorize, middleware.ConfirmRequired(), canComment, context.Wrap(h.Create))

	g := r.Group("/v1/comments")
	g.GET("/:id", context.Wrap(h.Show))
	g.POST("/:id/reply", authorize, middleware.ConfirmRequired(), canComment, context.Wrap(h.Reply))
	g.POST("/:id/report", authorize, middleware.ConfirmRequired(), context.Wrap(h.Report))
	g.DELETE("/:id", authorize, context.Wrap(h.Delete))
}

func (h *Comment) List(c *gin.Context) error {
	photoID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.CommentService.List(c.Request.Context(), photoID, page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Comment) Create(c *gin.Context) error {
	photoID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	return h.create(c, photoID, &req)
}

// Reply 回复评论, 照片取被回复评论所在的照片
func (h *Comment) Reply(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	replied, err := h.CommentService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	req.ReplyTo = replied.ID
	return h.create(c, replied.PhotoID, &req)
}

func (h *Comment) create(c *gin.Context, photoID uint64, req *types.CommentRequest) error {
	item, err := h.CommentService.Create(c.Request.Context(), context.CurrentUser(c), photoID, req)
	if err != nil {
		return bizError(err)
	}
	c.JSON(http.StatusCreated, response.Response{Code: 0, Msg: "Comment published.", Data: item})
	return nil
}

func (h *Comment) Show(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.CommentService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, item)
	return nil
}

func (h *Comment) Report(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CommentService.Report(c.Request.Context(), context.CurrentUser(c), id); err != nil {
		return bizError(err)
	}
	response.Message(c, "Comment reported.", nil)
	return nil
}

func (h *Comment) Delete(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CommentService.Delete(c.Request.Context(), context.CurrentUser(c), id); err != nil {
		return bizError(err)
	}
	response.Message(c, "Comment deleted.", nil)
	return nil
}
