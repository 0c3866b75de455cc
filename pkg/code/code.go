package code

import (
	"fmt"
	"net/http"
	"strings"
)

type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// HTTP 状态码
	httpStatus int
	// 错误消息
	Lang lang
	// 错误详细信息
	details []string
	// 原始错误
	cause error
}

var codes = map[int]string{}

func NewError(code int, httpStatus int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.en
	return &Code{code: code, status: false, httpStatus: httpStatus, Lang: l}
}

func NewSuss(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.en
	return &Code{code: code, status: true, httpStatus: http.StatusOK, Lang: l}
}

// Clone 创建一个新的 Code 副本，避免修改全局定义
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		status:     e.status,
		httpStatus: e.httpStatus,
		Lang:       e.Lang,
		details:    append([]string(nil), e.details...),
		cause:      e.cause,
	}
}

func (e *Code) Error() string {
	if len(e.details) == 0 {
		return e.Msg()
	}
	return e.Msg() + ": " + strings.Join(e.details, ", ")
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return len(e.details) > 0
}

// WithDetails returns a copy carrying details // WithDetails 返回带详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = append(c.details, details...)
	return c
}

// WithCause returns a copy wrapping the original error // WithCause 返回包装原始错误的副本
func (e *Code) WithCause(err error) *Code {
	c := e.Clone()
	c.cause = err
	if err != nil {
		c.details = append(c.details, err.Error())
	}
	return c
}

// Unwrap supports errors.Unwrap // 支持错误链路追踪
func (e *Code) Unwrap() error {
	return e.cause
}

// Is matches any Code with the same numeric code, so copies created by
// WithDetails/WithCause still satisfy errors.Is against the global definition.
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	if !ok {
		return false
	}
	return t.code == e.code
}

func (e *Code) StatusCode() int {
	if e.httpStatus == 0 {
		return http.StatusOK
	}
	return e.httpStatus
}
