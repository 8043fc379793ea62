package util

import (
	"errors"
	"fmt"
)

// 错误分类：控制器按类别映射 HTTP 状态码
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrChallengeNotFound = fmt.Errorf("challenge %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrPermissionDenied  = errors.New("permission denied")
	ErrSlugExhausted     = fmt.Errorf("%w: unable to generate a unique slug", ErrConflict)
)

func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// WrapValidation 保留原始错误链，同时归类为校验错误
func WrapValidation(err error) error {
	if err == nil || errors.Is(err, ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func NewConflictError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
