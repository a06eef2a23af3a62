package handler

import (
	"Moments/middleware"
	"Moments/pkg/context"
	"Moments/pkg/response"
	"Moments/service"
	"Moments/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Authenticator *middleware.Authenticator
	AuthService   service.IAuthService
}

func (h *Auth) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/auth")
	g.POST("/register", context.Wrap(h.Register))
	g.POST("/login", context.Wrap(h.Login))
	g.GET("/confirm/:token", h.Authenticator.Optional(), context.Wrap(h.Confirm))
	g.POST("/resend-confirm-email", h.Authenticator.Required(), context.Wrap(h.ResendConfirmation))
	g.POST("/forget-password", context.Wrap(h.ForgetPassword))
	g.GET("/reset-password/:token", context.Wrap(h.ValidateResetToken))
	g.POST("/reset-password/:token", context.Wrap(h.ResetPassword))
}

// Register 注册并发送确认邮件, 同时签发 access token
func (h *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	user, err := h.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	token, err := h.AuthService.IssueAccessToken(user)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{
		Code: 0,
		Msg:  "Confirm email sent, check your inbox.",
		Data: token,
	})
	return nil
}

func (h *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	user, err := h.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		return bizError(err)
	}
	token, err := h.AuthService.IssueAccessToken(user)
	if err != nil {
		return err
	}
	response.Success(c, token)
	return nil
}

func (h *Auth) Confirm(c *gin.Context) error {
	already, err := h.AuthService.Confirm(c.Request.Context(), context.CurrentUser(c), c.Param("token"))
	if err != nil {
		return bizError(err)
	}
	if already {
		response.Message(c, "Your account is already confirmed.", nil)
		return nil
	}
	response.Message(c, "Account confirmed.", nil)
	return nil
}

func (h *Auth) ResendConfirmation(c *gin.Context) error {
	err := h.AuthService.ResendConfirmation(c.Request.Context(), context.CurrentUser(c))
	if errors.Is(err, service.ErrAlreadyConfirmed) {
		response.Message(c, "Your account is already confirmed.", nil)
		return nil
	}
	if err != nil {
		return bizError(err)
	}
	response.Message(c, "New email sent, check your inbox.", nil)
	return nil
}

func (h *Auth) ForgetPassword(c *gin.Context) error {
	var req types.ForgetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.AuthService.ForgetPassword(c.Request.Context(), req.Email); err != nil {
		return bizError(err)
	}
	response.Message(c, "Password reset email sent, check your inbox.", nil)
	return nil
}

func (h *Auth) ValidateResetToken(c *gin.Context) error {
	if err := h.AuthService.ValidateResetToken(c.Request.Context(), c.Param("token")); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (h *Auth) ResetPassword(c *gin.Context) error {
	var req types.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err.Error())
	}
	if err := h.AuthService.ResetPassword(c.Request.Context(), c.Param("token"), req.Email, req.Password); err != nil {
		return bizError(err)
	}
	response.Message(c, "Password updated.", nil)
	return nil
}
