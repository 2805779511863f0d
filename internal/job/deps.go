package job

import (
	"Agora/internal/model"
	"Agora/internal/pkg/es"
	"Agora/internal/pkg/redis"
	"context"
	"time"
)

type PostScanner interface {
	GetPostsUpdatedSince(ctx context.Context, since time.Time, afterID uint64, limit int) ([]*model.Post, error)
}

type PostIndexer interface {
	IndexPost(ctx context.Context, post *es.PostES, version int64) error
	DeletePost(ctx context.Context, id uint64) error
}

type CheckpointStore interface {
	Load(ctx context.Context) (redis.IndexCheckpoint, error)
	Save(ctx context.Context, cp redis.IndexCheckpoint) error
}

type HotDecayer interface {
	Decay(ctx context.Context, factor, minScore float64, keep int) error
}

// Locker 多实例间互斥，拿不到锁的实例跳过本轮
type Locker interface {
	TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value interface{}) error
}
