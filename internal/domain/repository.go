// Package domain 定义领域模型和接口
package domain

import "context"

// ExchangeAPI is the remote side of the exchange connection registry
type ExchangeAPI interface {
	// ListExchanges 获取全部交易所连接
	ListExchanges(ctx context.Context) ([]*ExchangeLink, error)

	// CreateExchange 创建连接，返回服务端创建的记录
	CreateExchange(ctx context.Context, draft CredentialDraft) (*ExchangeLink, error)

	// SyncExchange 触发同步，服务端更新 lastSyncedAt
	SyncExchange(ctx context.Context, id ID) error

	// DeleteExchange 断开连接
	DeleteExchange(ctx context.Context, id ID) error
}

// NotificationAPI is the remote side of the notification store
type NotificationAPI interface {
	// ListNotifications 获取通知列表
	ListNotifications(ctx context.Context) ([]*Notification, error)

	// MarkNotificationRead 标记单条已读
	MarkNotificationRead(ctx context.Context, id ID) error

	// MarkAllNotificationsRead 全部标记已读
	MarkAllNotificationsRead(ctx context.Context) error
}

// PreferenceRepository 偏好设置仓储接口
type PreferenceRepository interface {
	// Get returns ok=false when the key has never been stored
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set 写入或覆盖
	Set(ctx context.Context, key, value string) error

	// Delete 删除，不存在时不报错
	Delete(ctx context.Context, key string) error
}
