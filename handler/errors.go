package handler

import (
	"Moments/middleware"
	"Moments/pkg/response"
	"Moments/service"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 业务错误到 HTTP 状态码
var bizStatus = []struct {
	err    error
	status int
}{
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrPermissionDenied, http.StatusForbidden},
	{service.ErrUnconfirmed, http.StatusForbidden},
	{service.ErrBlocked, http.StatusForbidden},
	{service.ErrCommentDisabled, http.StatusForbidden},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusBadRequest},
	{service.ErrAlreadyConfirmed, http.StatusBadRequest},
	{service.ErrEmailTaken, http.StatusBadRequest},
	{service.ErrUsernameTaken, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusBadRequest},
	{service.ErrEmptyComment, http.StatusBadRequest},
	{service.ErrInvalidImage, http.StatusBadRequest},
	{service.ErrInvalidTag, http.StatusBadRequest},
	{service.ErrEmptyQuery, http.StatusBadRequest},
	{service.ErrLastPhoto, http.StatusBadRequest},
	{service.ErrFirstPhoto, http.StatusBadRequest},
	{service.ErrUsernameMismatch, http.StatusBadRequest},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrTooFrequent, http.StatusTooManyRequests},
	{service.ErrSuggestUnavailable, http.StatusServiceUnavailable},
}

// bizError 把 service 的哨兵错误转换为 BizError, 其余错误原样返回由 Wrap 记为 500
func bizError(err error) error {
	for _, m := range bizStatus {
		if errors.Is(err, m.err) {
			return response.NewError(m.status, m.err.Error())
		}
	}
	return err
}

func badRequest(msg string) error {
	return response.NewError(http.StatusBadRequest, msg)
}

func paramID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest(name + " 格式错误")
	}
	return id, nil
}

// page 查询参数 ?page=, 缺省或非法时为 1
func page(c *gin.Context) int {
	p, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// formFile 打开 multipart 上传的文件, 调用方负责关闭
func formFile(c *gin.Context, field string) (string, multipart.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", nil, badRequest("缺少上传文件 " + field)
	}
	f, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	middleware.ObserveUpload(header.Size)
	return header.Filename, f, nil
}
