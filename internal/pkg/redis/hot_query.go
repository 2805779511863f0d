package redis

import (
	"Agora/internal/pkg/consts"
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type HotQuery struct {
	Query string
	Score float64
}

// incrOnceScript 去重标记写入成功才计数，两步在同一脚本内原子执行
const incrOnceScript = `if redis.call('set', KEYS[1], 1, 'NX', 'EX', ARGV[1]) then
	redis.call('zincrby', KEYS[2], 1, ARGV[2])
	return 1
end
return 0`

// HotQueryStore 热搜词计数，ZSET 成员为归一化后的查询词
type HotQueryStore struct {
	rdb *redis.Client
	key string
}

func NewHotQueryStore(rdb *redis.Client) *HotQueryStore {
	return &HotQueryStore{rdb: rdb, key: consts.HotQueryKey}
}

func (s *HotQueryStore) Incr(ctx context.Context, query string) error {
	return s.rdb.ZIncrBy(ctx, s.key, 1, query).Err()
}

// IncrOnce 同一 eventID 只计数一次，重复投递时返回 false
func (s *HotQueryStore) IncrOnce(ctx context.Context, eventID, query string) (bool, error) {
	if eventID == "" {
		return true, s.Incr(ctx, query)
	}
	ttl := int64(consts.HotQueryEventTTL / time.Second)
	n, err := s.rdb.Eval(ctx, incrOnceScript, []string{consts.HotQueryEventKey + eventID, s.key}, ttl, query).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Remove 删除热搜词，返回是否存在
func (s *HotQueryStore) Remove(ctx context.Context, query string) (bool, error) {
	n, err := s.rdb.ZRem(ctx, s.key, query).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Top 分数从高到低取前 n 个
func (s *HotQueryStore) Top(ctx context.Context, n int) ([]HotQuery, error) {
	if n <= 0 {
		return []HotQuery{}, nil
	}
	zs, err := s.rdb.ZRevRangeWithScores(ctx, s.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]HotQuery, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		out = append(out, HotQuery{Query: member, Score: z.Score})
	}
	return out, nil
}

// Decay 全部分数乘以 factor，移除低于 minScore 的成员，只保留前 keep 个
func (s *HotQueryStore) Decay(ctx context.Context, factor, minScore float64, keep int) error {
	pipe := s.rdb.TxPipeline()
	pipe.ZUnionStore(ctx, s.key, &redis.ZStore{
		Keys:    []string{s.key},
		Weights: []float64{factor},
	})
	pipe.ZRemRangeByScore(ctx, s.key, "-inf", "("+strconv.FormatFloat(minScore, 'f', -1, 64))
	pipe.ZRemRangeByRank(ctx, s.key, 0, int64(-keep-1))
	_, err := pipe.Exec(ctx)
	return err
}
