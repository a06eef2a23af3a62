package handler

import (
	"Moments/middleware"
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"
	"Moments/types"

	"github.com/gin-gonic/gin"
)

// Settings 当前用户的账号设置
type Settings struct {
	Authenticator *middleware.Authenticator
	UserService   service.IUserService
}

func (h *Settings) RegisterRouter(r gin.IRouter) {
	authorize := h.Authenticator.Required()
	confirmed := middleware.ConfirmRequired()

	g := r.Group("/v1/settings")
	// 邮件中的链接, 可在未登录时打开
	g.GET("/email/:token", h.Authenticator.Optional(), context.Wrap(h.ChangeEmail))

	g.Use(authorize)
	g.PUT("/profile", confirmed, context.Wrap(h.EditProfile))
	g.POST("/avatar", confirmed, context.Wrap(h.UploadAvatar))
	g.POST("/avatar/crop", confirmed, context.Wrap(h.CropAvatar))
	g.PUT("/password", context.Wrap(h.ChangePassword))
	g.POST("/email", confirmed, context.Wrap(h.RequestEmailChange))
	g.PUT("/notification", context.Wrap(h.Notification))
	g.PUT("/privacy", context.Wrap(h.Privacy))
	g.DELETE("/account", context.Wrap(h.DeleteAccount))
}

func (h *Settings) EditProfile(c *gin.Context) error {
	var req types.EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.UserService.EditProfile(c.Request.Context(), context.CurrentUser(c), &req); err != nil {
		return bizError(err)
	}
	response.Message(c, "Profile updated.", nil)
	return nil
}

// UploadAvatar 上传原始头像, 之后通过 crop 生成三种尺寸
func (h *Settings) UploadAvatar(c *gin.Context) error {
	name, f, err := formFile(c, "image")
	if err != nil {
		return err
	}
	defer f.Close()

	resp, err := h.UserService.UploadAvatar(c.Request.Context(), context.CurrentUser(c), name, f)
	if err != nil {
		return bizError(err)
	}
	response.Message(c, "Image uploaded, please crop.", resp)
	return nil
}

func (h *Settings) CropAvatar(c *gin.Context) error {
	var req types.CropAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	resp, err := h.UserService.CropAvatar(c.Request.Context(), context.CurrentUser(c), &req)
	if err != nil {
		return bizError(err)
	}
	response.Message(c, "Avatar updated.", resp)
	return nil
}

func (h *Settings) ChangePassword(c *gin.Context) error {
	var req types.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.UserService.ChangePassword(c.Request.Context(), context.CurrentUser(c), &req); err != nil {
		return bizError(err)
	}
	response.Message(c, "Password updated.", nil)
	return nil
}

func (h *Settings) RequestEmailChange(c *gin.Context) error {
	var req types.ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.UserService.RequestEmailChange(c.Request.Context(), context.CurrentUser(c), req.Email); err != nil {
		return bizError(err)
	}
	response.Message(c, "Confirm email sent, check your inbox.", nil)
	return nil
}

func (h *Settings) ChangeEmail(c *gin.Context) error {
	if err := h.UserService.ChangeEmail(c.Request.Context(), context.CurrentUser(c), c.Param("token")); err != nil {
		return bizError(err)
	}
	response.Message(c, "Email updated.", nil)
	return nil
}

func (h *Settings) Notification(c *gin.Context) error {
	var req types.NotificationSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.UserService.UpdateNotificationSettings(c.Request.Context(), context.CurrentUser(c), &req); err != nil {
		return bizError(err)
	}
	response.Message(c, "Notification settings updated.", nil)
	return nil
}

func (h *Settings) Privacy(c *gin.Context) error {
	var req types.PrivacySettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.UserService.UpdatePrivacy(c.Request.Context(), context.CurrentUser(c), &req); err != nil {
		return bizError(err)
	}
	response.Message(c, "Privacy settings updated.", nil)
	return nil
}

func (h *Settings) DeleteAccount(c *gin.Context) error {
	var req types.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.UserService.DeleteAccount(c.Request.Context(), context.CurrentUser(c), req.Username); err != nil {
		return bizError(err)
	}
	response.Message(c, "Your are free, goodbye!", nil)
	return nil
}
