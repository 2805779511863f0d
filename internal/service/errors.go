package service

import (
	"errors"
	"fmt"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrCommunityForbidden = errors.New("无权访问该社区")
	ErrLoginRequired      = errors.New("请先登录")
	ErrHotQueryNotFound   = errors.New("热搜词不存在")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrCommunityForbidden: Forbidden,
	ErrLoginRequired:      Unauthorized,
	ErrHotQueryNotFound:   NotFound,
	UnauthorizedError:     Unauthorized,
	UnExpectedError:       InternalServerError,
}

// ValidationError 参数校验失败，Field 为出错的请求参数
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrParamInvalid
}
