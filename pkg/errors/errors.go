// Package errors renders failures as the JSON error body of the dashboard API:
// {"code":..,"message":..,"details":[..]}
package errors

import (
	"errors"
	"net/http"

	"github.com/haierkeys/portfolio-dash/pkg/code"

	"github.com/gin-gonic/gin"
)

// traceHeader is set on the response by the trace middleware
const traceHeader = "X-Trace-ID"

// Body 错误响应体
type Body struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"traceId,omitempty"`

	status int
	cause  error
}

func (b *Body) Error() string { return b.Message }

func (b *Body) Unwrap() error { return b.cause }

// Status HTTP 状态码，未设置时为 500
func (b *Body) Status() int {
	if b.status == 0 {
		return http.StatusInternalServerError
	}
	return b.status
}

// FromCode 由错误码构建响应体，cause 用于错误链
func FromCode(c *code.Code, cause error) *Body {
	return &Body{
		Code:    c.Code(),
		Message: c.Msg(),
		Details: c.Details(),
		status:  c.StatusCode(),
		cause:   cause,
	}
}

// From 将任意错误转换为响应体；非 *code.Code 错误按内部错误处理
func From(err error) *Body {
	var b *Body
	if errors.As(err, &b) {
		return b
	}
	var c *code.Code
	if errors.As(err, &c) {
		return FromCode(c, err)
	}
	return FromCode(code.ErrorServerInternal, err)
}

// ErrorResponse 中止请求并写出错误响应
func ErrorResponse(c *gin.Context, err error) {
	b := From(err)
	if b.TraceID == "" {
		b.TraceID = c.Writer.Header().Get(traceHeader)
	}
	c.AbortWithStatusJSON(b.Status(), b)
}
