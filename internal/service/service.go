// Package service implements the client state layer: the exchange connection
// registry, the notification store, the credential form, preferences and auth.
// Package service 实现客户端状态层
package service

import (
	"context"

	"github.com/haierkeys/portfolio-dash/pkg/code"
)

// DisconnectPrompt is shown before a link is removed
const DisconnectPrompt = "Disconnect this exchange?"

var (
	// ErrBusy 相同操作正在进行中
	ErrBusy = code.ErrorActionBusy
	// ErrUnknownLink 连接不在当前列表中
	ErrUnknownLink = code.ErrorExchangeNotFound
	// ErrNotConfirmed 用户取消了断开操作
	ErrNotConfirmed = code.ErrorDisconnectNotConfirmed
	// ErrClosed 视图已卸载
	ErrClosed = code.ErrorClosed
)

// Alerter reports a failed user action
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// AlertFunc adapts a function to Alerter
type AlertFunc func(ctx context.Context, message string)

func (f AlertFunc) Alert(ctx context.Context, message string) { f(ctx, message) }

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// AlwaysConfirm approves every prompt
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

type nopAlerter struct{}

func (nopAlerter) Alert(context.Context, string) {}
