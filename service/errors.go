package service

import (
	"Moments/dao"
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnconfirmed        = errors.New("account not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAlreadyConfirmed   = errors.New("account already confirmed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBlocked            = errors.New("account blocked")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrCommentDisabled    = errors.New("comment disabled")
	ErrEmptyComment       = errors.New("comment body is empty")
	ErrInvalidImage       = errors.New("invalid image")
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidTag         = errors.New("invalid tag name")
	ErrEmptyQuery         = errors.New("empty search query")
	ErrLastPhoto          = errors.New("already the last photo")
	ErrFirstPhoto         = errors.New("already the first photo")
	ErrTooFrequent        = errors.New("too many requests")
	ErrSuggestUnavailable = errors.New("tag suggestion unavailable")
	ErrUsernameMismatch   = errors.New("username does not match")
)

// notFound 把 gorm 的记录不存在转换为 ErrNotFound
func notFound(err error) error {
	if dao.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
