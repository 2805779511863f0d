package consts

const (
	CommunityNameKey   = "community:name:"
	HotQueryKey        = "search:hot"
	HotQueryEventKey   = "search:hot:event:"
	IndexCheckpointKey = "search:index:checkpoint"
	TokenBlacklistKey  = "token:blacklist:"
)

const (
	PostIndexLock = "lock:search:index"
	HotDecayLock  = "lock:search:hot:decay"
)
