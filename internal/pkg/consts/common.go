package consts

import "time"

// 热搜衰减参数
const (
	HotQueryDecayFactor = 0.5
	HotQueryMinScore    = 0.5
	HotQueryKeep        = 200
	// HotQueryEventTTL 事件去重标记保留时长，需覆盖消费重投窗口
	HotQueryEventTTL = 24 * time.Hour
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	DefaultHotSize     = 10
	MaxHotSize         = 50
)

// UserIDKey 鉴权中间件写入 gin.Context 的用户 ID
const UserIDKey = "user_id"

const (
	DefaultHistorySize = 20
	MaxHistorySize     = 100
)
