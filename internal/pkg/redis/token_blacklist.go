package redis

import (
	"Agora/internal/pkg/consts"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 已注销的 token，按 jti 记录到原过期时间为止
type TokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, consts.TokenBlacklistKey+jti, 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, consts.TokenBlacklistKey+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
