package search

import (
	"context"
	log "log/slog"
	"slices"
)

// Enricher 为结果页补充社区名称，尽力而为
type Enricher struct {
	resolver CommunityNameResolver
}

func NewEnricher(resolver CommunityNameResolver) *Enricher {
	return &Enricher{resolver: resolver}
}

// Enrich 解析结果页中出现的社区 ID 并回填名称
// 解析失败只记录日志，不影响结果本身
func (e *Enricher) Enrich(ctx context.Context, results []*Result) []*Result {
	if len(results) == 0 || e.resolver == nil {
		return results
	}

	seen := make(map[uint64]struct{})
	ids := make([]uint64, 0)
	for _, r := range results {
		if r.CommunityID == 0 {
			continue
		}
		if _, ok := seen[r.CommunityID]; ok {
			continue
		}
		seen[r.CommunityID] = struct{}{}
		ids = append(ids, r.CommunityID)
	}
	if len(ids) == 0 {
		return results
	}
	slices.Sort(ids)

	names, err := e.resolver.ResolveCommunityNames(ctx, ids)
	if err != nil {
		log.WarnContext(ctx, "resolve community names failed", "ids", ids, "err", err)
		return results
	}

	for _, r := range results {
		if r.CommunityID == 0 {
			continue
		}
		r.CommunityName = names[r.CommunityID]
	}
	return results
}
