package redis

import (
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/search"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CommunityNameCache 社区名称读穿缓存，未命中部分回源
type CommunityNameCache struct {
	rdb  *redis.Client
	next search.CommunityNameResolver
	ttl  time.Duration
}

func NewCommunityNameCache(rdb *redis.Client, next search.CommunityNameResolver, ttl time.Duration) *CommunityNameCache {
	return &CommunityNameCache{rdb: rdb, next: next, ttl: ttl}
}

func communityNameKey(id uint64) string {
	return consts.CommunityNameKey + strconv.FormatUint(id, 10)
}

func (c *CommunityNameCache) ResolveCommunityNames(ctx context.Context, ids []uint64) (map[uint64]string, error) {
	names := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = communityNameKey(id)
	}

	missing := ids
	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		log.WarnContext(ctx, "community name cache read failed", "err", err)
	} else {
		missing = make([]uint64, 0, len(ids))
		for i, v := range values {
			if name, ok := v.(string); ok {
				names[ids[i]] = name
				continue
			}
			missing = append(missing, ids[i])
		}
	}
	if len(missing) == 0 {
		return names, nil
	}

	found, err := c.next.ResolveCommunityNames(ctx, missing)
	if err != nil {
		return nil, err
	}

	pipe := c.rdb.Pipeline()
	for id, name := range found {
		names[id] = name
		pipe.Set(ctx, communityNameKey(id), name, c.ttl)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		log.WarnContext(ctx, "community name cache write failed", "err", err)
	}
	return names, nil
}
