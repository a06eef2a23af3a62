package handler

import (
	"Moments/middleware"
	"Moments/models"
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"
	"Moments/types"
	stdctx "context"

	"github.com/gin-gonic/gin"
)

type Admin struct {
	Authenticator  *middleware.Authenticator
	Roles          service.IRoleService
	AdminService   service.IAdminService
	PhotoService   service.IPhotoService
	CommentService service.ICommentService
	TagService     service.ITagService
}

func (h *Admin) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/admin")
	g.Use(h.Authenticator.Required(), middleware.PermissionRequired(h.Roles, models.PermModerate))

	g.GET("/dashboard", context.Wrap(h.Dashboard))
	g.GET("/roles", context.Wrap(h.RoleList))
	g.PUT("/users/:id", middleware.AdminRequired(h.Roles), context.Wrap(h.EditProfile))
	g.POST("/users/:id/lock", context.Wrap(h.Lock))
	g.POST("/users/:id/unlock", context.Wrap(h.Unlock))
	g.POST("/users/:id/block", context.Wrap(h.Block))
	g.POST("/users/:id/unblock", context.Wrap(h.Unblock))
	g.DELETE("/tags/:id", context.Wrap(h.DeleteTag))
	g.DELETE("/photos/:id", context.Wrap(h.DeletePhoto))
	g.DELETE("/comments/:id", context.Wrap(h.DeleteComment))

	m := g.Group("/manage")
	m.GET("/users", context.Wrap(h.ManageUsers))
	m.GET("/photos", context.Wrap(h.ManagePhotos))
	m.GET("/tags", context.Wrap(h.ManageTags))
	m.GET("/comments", context.Wrap(h.ManageComments))
}

func (h *Admin) Dashboard(c *gin.Context) error {
	d, err := h.AdminService.Dashboard(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, d)
	return nil
}

func (h *Admin) RoleList(c *gin.Context) error {
	roles, err := h.Roles.Roles(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, roles)
	return nil
}

func (h *Admin) EditProfile(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.AdminEditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.AdminService.EditProfile(c.Request.Context(), id, &req); err != nil {
		return bizError(err)
	}
	response.Message(c, "Profile updated.", nil)
	return nil
}

func (h *Admin) Lock(c *gin.Context) error {
	return h.userAction(c, h.AdminService.Lock, "Account locked.")
}

func (h *Admin) Unlock(c *gin.Context) error {
	return h.userAction(c, h.AdminService.Unlock, "Lock canceled.")
}

func (h *Admin) Block(c *gin.Context) error {
	return h.userAction(c, h.AdminService.Block, "Account blocked.")
}

func (h *Admin) Unblock(c *gin.Context) error {
	return h.userAction(c, h.AdminService.Unblock, "Block canceled.")
}

func (h *Admin) userAction(c *gin.Context, action func(stdctx.Context, *models.User, uint64) error, msg string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := action(c.Request.Context(), context.CurrentUser(c), id); err != nil {
		return bizError(err)
	}
	response.Message(c, msg, nil)
	return nil
}

func (h *Admin) DeleteTag(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.TagService.Delete(c.Request.Context(), id); err != nil {
		return bizError(err)
	}
	response.Message(c, "Tag deleted.", nil)
	return nil
}

func (h *Admin) DeletePhoto(c *gin.Context) error {
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

func (h *Admin) DeleteComment(c *gin.Context) error {
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

// ManageUsers ?filter=all|locked|blocked|administrator|moderator
func (h *Admin) ManageUsers(c *gin.Context) error {
	resp, err := h.AdminService.ManageUsers(c.Request.Context(), c.DefaultQuery("filter", "all"), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

// ManagePhotos ?order=by_flag|by_time
func (h *Admin) ManagePhotos(c *gin.Context) error {
	resp, err := h.AdminService.ManagePhotos(c.Request.Context(), c.DefaultQuery("order", "by_flag"), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Admin) ManageTags(c *gin.Context) error {
	resp, err := h.AdminService.ManageTags(c.Request.Context(), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Admin) ManageComments(c *gin.Context) error {
	resp, err := h.AdminService.ManageComments(c.Request.Context(), c.DefaultQuery("order", "by_flag"), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}
