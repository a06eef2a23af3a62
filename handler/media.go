package handler

import (
	"Moments/models"
	"Moments/pkg/context"
	"Moments/service"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// Media 从存储中读取照片和头像文件
type Media struct {
	Storage service.IStorage
}

// RegisterRouter 挂在根路由上, 与存储生成的 URL 一致
func (h *Media) RegisterRouter(r gin.IRouter) {
	r.GET("/images/:filename", context.Wrap(h.Image))
	r.GET("/avatars/:filename", context.Wrap(h.Avatar))
}

func (h *Media) Image(c *gin.Context) error {
	return h.serve(c, c.Param("filename"))
}

func (h *Media) Avatar(c *gin.Context) error {
	return h.serve(c, models.AvatarKey(c.Param("filename")))
}

func (h *Media) serve(c *gin.Context, key string) error {
	if strings.Contains(key, "..") {
		return bizError(service.ErrNotFound)
	}
	rc, err := h.Storage.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return bizError(err)
		}
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
	return nil
}
