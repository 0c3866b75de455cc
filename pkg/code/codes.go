package code

import "net/http"

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal       = NewError(500, http.StatusInternalServerError, lang{en: "Internal Server Error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams        = NewError(505, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorNotUserAuthToken     = NewError(507, http.StatusUnauthorized, lang{en: "Not logged in", zh_cn: "未登录"})
	ErrorInvalidUserAuthToken = NewError(508, http.StatusUnauthorized, lang{en: "Login expired, please log in again", zh_cn: "登录已失效，请重新登录"})
	ErrorTooManyRequests      = NewError(509, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorNotFound             = NewError(510, http.StatusNotFound, lang{en: "Not found", zh_cn: "未找到"})

	// 交易所连接
	ErrorExchangeConnectFailed    = NewError(610, http.StatusBadGateway, lang{en: "Failed to connect exchange", zh_cn: "连接交易所失败"})
	ErrorExchangeSyncFailed       = NewError(611, http.StatusBadGateway, lang{en: "Sync failed", zh_cn: "同步失败"})
	ErrorExchangeDisconnectFailed = NewError(612, http.StatusBadGateway, lang{en: "Failed to disconnect exchange", zh_cn: "断开交易所失败"})
	ErrorExchangeNotFound         = NewError(613, http.StatusNotFound, lang{en: "Exchange connection not found", zh_cn: "交易所连接不存在"})
	ErrorExchangeUnsupported      = NewError(614, http.StatusBadRequest, lang{en: "Unsupported exchange", zh_cn: "不支持的交易所"})
	ErrorCredentialInvalid        = NewError(615, http.StatusBadRequest, lang{en: "Invalid exchange credentials", zh_cn: "交易所凭证无效"})
	ErrorDisconnectNotConfirmed   = NewError(616, http.StatusBadRequest, lang{en: "Disconnect was not confirmed", zh_cn: "未确认断开连接"})

	// 通知
	ErrorNotificationMarkReadFailed    = NewError(620, http.StatusBadGateway, lang{en: "Mark as read failed", zh_cn: "标记已读失败"})
	ErrorNotificationMarkAllReadFailed = NewError(621, http.StatusBadGateway, lang{en: "Mark all as read failed", zh_cn: "全部标记已读失败"})
	ErrorNotificationNotFound          = NewError(622, http.StatusNotFound, lang{en: "Notification not found", zh_cn: "通知不存在"})

	// 偏好设置
	ErrorCurrencyUnsupported = NewError(630, http.StatusBadRequest, lang{en: "Unsupported currency", zh_cn: "不支持的货币"})
	ErrorPreferenceSave      = NewError(631, http.StatusInternalServerError, lang{en: "Failed to save preference", zh_cn: "保存偏好设置失败"})
	ErrorTokenEmpty          = NewError(632, http.StatusBadRequest, lang{en: "Token is empty", zh_cn: "Token 为空"})

	// 通用
	ErrorActionBusy = NewError(640, http.StatusConflict, lang{en: "Request already in progress", zh_cn: "请求正在处理中"})
	ErrorClosed     = NewError(641, http.StatusGone, lang{en: "View has been closed", zh_cn: "视图已关闭"})
)
