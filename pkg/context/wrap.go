package context

import (
	"Moments/models"
	"Moments/pkg/log"
	"Moments/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
	CtxUser   = "user"
)

// Wrap 把返回 error 的 handler 适配为 gin.HandlerFunc, BizError 按其状态码输出
func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			// 已经写过响应
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				c.JSON(be.Code, response.Response{
					Code: be.Code,
					Msg:  be.Msg,
				})
				return
			}
			_ = c.Error(err)
			log.L.Error("handler error", zap.String("path", c.FullPath()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: http.StatusInternalServerError,
				Msg:  "Internal server error.",
			})
		}
	}
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id not found")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errors.New("user_id has wrong type")
	}

	return uid, nil
}

// CurrentUser 当前登录用户, 匿名访问返回 nil
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
