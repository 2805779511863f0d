package search

import (
	"Agora/internal/pkg/metrics"
	"cmp"
	"context"
	log "log/slog"
	"slices"
	"strings"
)

// DefaultMaxCandidates 单次搜索从数据源拉取的候选上限
const DefaultMaxCandidates = 5000

type Option func(*Executor)

// WithScoreFunc 替换文本相关度打分，自定义打分不再向数据源下推文本条件
func WithScoreFunc(fn ScoreFunc) Option {
	return func(e *Executor) {
		if fn != nil {
			e.score = fn
			e.pushDownText = false
		}
	}
}

// WithFoldTagCase 标签比较前将帖子标签转小写，过滤组标签需由调用方同样处理
func WithFoldTagCase(fold bool) Option {
	return func(e *Executor) {
		e.foldTagCase = fold
	}
}

// WithMaxCandidates 设置候选上限
func WithMaxCandidates(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxCandidates = n
		}
	}
}

// Executor 搜索执行器：拉取候选 -> 过滤 -> 打分 -> 排序 -> 分页
type Executor struct {
	source        CandidateSource
	score         ScoreFunc
	foldTagCase   bool
	maxCandidates int
	// pushDownText 打分规则与数据源的子串过滤一致时才下推
	pushDownText bool
}

func NewExecutor(source CandidateSource, opts ...Option) *Executor {
	e := &Executor{
		source:        source,
		score:         SubstringScore,
		maxCandidates: DefaultMaxCandidates,
		pushDownText:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FoldTagCase 执行器是否对标签做大小写折叠
func (e *Executor) FoldTagCase() bool {
	return e.foldTagCase
}

// Execute 执行搜索，对相同输入和相同数据返回相同的有序结果
func (e *Executor) Execute(ctx context.Context, q *Query) ([]*Result, error) {
	text := strings.TrimSpace(q.Text)
	filter := CandidateFilter{
		Status:              StatusApproved,
		CommunityID:         q.CommunityID,
		ExcludeCommunityIDs: q.ExcludeCommunityIDs,
		Limit:               e.maxCandidates,
	}
	if e.pushDownText {
		filter.Text = text
	}

	candidates, err := e.source.SearchCandidatePosts(ctx, filter)
	if err != nil {
		return nil, &DataAccessError{Op: "fetch candidate posts", Err: err}
	}
	if len(candidates) >= e.maxCandidates {
		// 候选被截断，更早的帖子不参与本次搜索
		log.WarnContext(ctx, "candidate cap reached", "limit", e.maxCandidates, "text", text)
		metrics.ObserveCandidateCapHit()
	}

	var excluded map[uint64]struct{}
	if len(q.ExcludeCommunityIDs) > 0 {
		excluded = make(map[uint64]struct{}, len(q.ExcludeCommunityIDs))
		for _, id := range q.ExcludeCommunityIDs {
			excluded[id] = struct{}{}
		}
	}

	results := make([]*Result, 0, len(candidates))
	for _, p := range candidates {
		// 1. 状态
		if p.Status != StatusApproved {
			continue
		}

		// 2. 文本匹配与打分
		similarity := UnscoredSimilarity
		if text != "" {
			s, ok := e.score(text, p.Title, p.Content)
			if !ok {
				continue
			}
			similarity = min(max(s, 0), 1)
		}

		// 3. 社区范围
		if q.CommunityID != nil && p.CommunityID != *q.CommunityID {
			continue
		}
		if _, hidden := excluded[p.CommunityID]; hidden {
			continue
		}

		// 4. 标签
		if len(q.TagFilters) > 0 && !MatchTags(TagSet(p.Tags, e.foldTagCase), q.TagFilters) {
			continue
		}

		results = append(results, &Result{Post: *p.Clone(), Similarity: similarity})
	}

	// 5. 排序
	if q.SortBy == SortByTime {
		slices.SortFunc(results, compareByTime)
	} else {
		slices.SortFunc(results, compareByRelevance)
	}

	// 6. 分页
	return paginate(results, q.Offset, q.Limit), nil
}

// compareByRelevance 相似度 > 互动分 > 创建时间，最后按 ID 升序保证全序
func compareByRelevance(a, b *Result) int {
	if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
		return c
	}
	if c := cmp.Compare(b.EngagementScore, a.EngagementScore); c != 0 {
		return c
	}
	return compareByTime(a, b)
}

func compareByTime(a, b *Result) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func paginate(results []*Result, offset, limit int) []*Result {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []*Result{}
	}
	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return results[offset:end]
}
