package redis

import (
	"Agora/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// IndexCheckpoint 索引同步游标，(UpdatedAt, PostID) 之前的变更都已写入 ES
type IndexCheckpoint struct {
	UpdatedAt time.Time `json:"updated_at"`
	PostID    uint64    `json:"post_id"`
}

type CheckpointStore struct {
	rdb *redis.Client
	key string
}

func NewCheckpointStore(rdb *redis.Client) *CheckpointStore {
	return &CheckpointStore{rdb: rdb, key: consts.IndexCheckpointKey}
}

// Load 没有游标时返回零值
func (s *CheckpointStore) Load(ctx context.Context) (IndexCheckpoint, error) {
	var cp IndexCheckpoint
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cp, nil
		}
		return cp, err
	}
	err = json.Unmarshal(raw, &cp)
	return cp, err
}

func (s *CheckpointStore) Save(ctx context.Context, cp IndexCheckpoint) error {
	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, raw, 0).Err()
}
