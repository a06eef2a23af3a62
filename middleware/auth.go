package middleware

import (
	"Moments/config"
	"Moments/dao"
	"Moments/models"
	appctx "Moments/pkg/context"
	"Moments/pkg/jwt"
	"Moments/pkg/log"
	"Moments/pkg/response"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionChecker 角色权限判断, 由 service.RoleService 实现
type PermissionChecker interface {
	Can(ctx context.Context, user *models.User, permission string) bool
}

// Authenticator 解析 access token 并把当前用户放入 gin.Context
type Authenticator struct {
	Config  *config.Config
	UserDAO *dao.Users
}

// Required 必须登录
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.load(c) {
			if !c.IsAborted() {
				response.Abort(c, http.StatusUnauthorized, "Please log in to access this page.")
			}
			return
		}
		c.Next()
	}
}

// Optional 携带合法令牌时加载用户, 否则按匿名访问
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.load(c)
		if c.IsAborted() {
			return
		}
		c.Next()
	}
}

func (a *Authenticator) load(c *gin.Context) bool {
	token := bearer(c)
	if token == "" {
		return false
	}
	claims, err := jwt.ParseToken([]byte(a.Config.Jwt.Secret), jwt.TokenAccess, token)
	if err != nil {
		log.L.Debug("parse access token", zap.Error(err))
		return false
	}
	user, err := a.UserDAO.FindById(c.Request.Context(), claims.UserID)
	if err != nil {
		if !dao.IsNotFound(err) {
			log.L.Error("load current user", zap.Uint64("uid", claims.UserID), zap.Error(err))
		}
		return false
	}
	if !user.Active {
		response.Abort(c, http.StatusForbidden, "Your account is blocked.")
		return false
	}
	c.Set(appctx.CtxUserID, user.ID)
	c.Set(appctx.CtxUser, user)
	return true
}

// websocket 握手无法设置 header, 允许通过 ?token= 传递
func bearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}

// ConfirmRequired 必须已确认邮箱, 需放在 Required 之后
func ConfirmRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.CurrentUser(c)
		if user == nil {
			response.Abort(c, http.StatusUnauthorized, "Please log in to access this page.")
			return
		}
		if !user.Confirmed {
			response.Abort(c, http.StatusForbidden, "Please confirm your account first.")
			return
		}
		c.Next()
	}
}

// PermissionRequired 当前用户的角色需拥有 permission
func PermissionRequired(checker PermissionChecker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.CurrentUser(c)
		if !checker.Can(c.Request.Context(), user, permission) {
			response.Abort(c, http.StatusForbidden, "You don't have the permission.")
			return
		}
		c.Next()
	}
}

func AdminRequired(checker PermissionChecker) gin.HandlerFunc {
	return PermissionRequired(checker, models.PermAdmin)
}
