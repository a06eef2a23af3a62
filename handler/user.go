package handler

import (
	"Moments/middleware"
	"Moments/models"
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"
	"Moments/types"

	"github.com/gin-gonic/gin"
)

type User struct {
	Authenticator *middleware.Authenticator
	Roles         service.IRoleService
	UserService   service.IUserService
	FollowService service.IFollowService
}

func (h *User) RegisterRouter(r gin.IRouter) {
	authorize := h.Authenticator.Required()
	optional := h.Authenticator.Optional()

	g := r.Group("/v1/users")
	g.GET("/me", authorize, context.Wrap(h.Me))
	g.GET("/:username", optional, context.Wrap(h.Profile))
	g.GET("/:username/photos", context.Wrap(h.Photos))
	g.GET("/:username/collections", optional, context.Wrap(h.Collections))
	g.GET("/:username/followers", context.Wrap(h.Followers))
	g.GET("/:username/following", context.Wrap(h.Following))
	g.POST("/:username/follow", authorize, middleware.ConfirmRequired(),
		middleware.PermissionRequired(h.Roles, models.PermFollow), context.Wrap(h.Follow))
	g.DELETE("/:username/follow", authorize, context.Wrap(h.Unfollow))
}

func (h *User) Me(c *gin.Context) error {
	user := context.CurrentUser(c)
	profile, err := h.UserService.Profile(c.Request.Context(), user, user.Username)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, profile)
	return nil
}

func (h *User) Profile(c *gin.Context) error {
	profile, err := h.UserService.Profile(c.Request.Context(), context.CurrentUser(c), c.Param("username"))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, profile)
	return nil
}

func (h *User) Photos(c *gin.Context) error {
	resp, err := h.UserService.UserPhotos(c.Request.Context(), c.Param("username"), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *User) Collections(c *gin.Context) error {
	resp, err := h.UserService.UserCollections(c.Request.Context(), context.CurrentUser(c), c.Param("username"), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *User) Followers(c *gin.Context) error {
	resp, err := h.UserService.Followers(c.Request.Context(), c.Param("username"), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *User) Following(c *gin.Context) error {
	resp, err := h.UserService.Following(c.Request.Context(), c.Param("username"), page(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

// Follow 关注用户, 重复关注返回 200 并提示
func (h *User) Follow(c *gin.Context) error {
	changed, err := h.FollowService.Follow(c.Request.Context(), context.CurrentUser(c), c.Param("username"))
	if err != nil {
		return bizError(err)
	}
	msg := "User followed."
	if !changed {
		msg = "Already followed."
	}
	response.Message(c, msg, types.StateResponse{State: true, Changed: changed, Message: msg})
	return nil
}

func (h *User) Unfollow(c *gin.Context) error {
	changed, err := h.FollowService.Unfollow(c.Request.Context(), context.CurrentUser(c), c.Param("username"))
	if err != nil {
		return bizError(err)
	}
	msg := "User unfollowed."
	if !changed {
		msg = "Not follow yet."
	}
	response.Message(c, msg, types.StateResponse{State: false, Changed: changed, Message: msg})
	return nil
}
