package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldPath 请求路径字段
	FieldPath = "path"

	// FieldStatus HTTP 状态码字段
	FieldStatus = "status"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldExchangeID 交易所连接 ID 字段
	FieldExchangeID = "exchangeId"

	// FieldNotificationID 通知 ID 字段
	FieldNotificationID = "notificationId"

	// FieldDraft 凭证草稿字段（仅输出脱敏信息）
	FieldDraft = "draft"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldCurrency 货币字段
	FieldCurrency = "currency"

	// FieldTask 任务名称字段
	FieldTask = "task"
)
