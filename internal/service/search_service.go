package service

import (
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/kafka"
	"Agora/internal/pkg/logger"
	"Agora/internal/pkg/metrics"
	"Agora/internal/pkg/search"
	"Agora/internal/pkg/util"
	"Agora/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// SearchQuery 帖子搜索请求，Limit/Offset/SortBy 为空时取默认值
type SearchQuery struct {
	Query       string             `json:"q"`
	TagFilters  []search.TagFilter `json:"tagFilters" validate:"omitempty,dive"`
	CommunityID *uint64            `json:"communityId"`
	UserID      uint64             `json:"-"` // 0 表示匿名
	Limit       *int               `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset      *int               `json:"offset" validate:"omitempty,min=0"`
	SortBy      search.SortBy      `json:"sortBy" validate:"omitempty,oneof=relevance time"`
}

type SearchService interface {
	SearchPosts(ctx context.Context, q *SearchQuery) ([]*search.Result, error)
}

type searchServiceImpl struct {
	executor       *search.Executor
	enricher       *search.Enricher
	communityRepo  repository.CommunityRepo
	recorder       kafka.EventRecorder
	maxQueryLength int
}

func NewSearchService(
	executor *search.Executor,
	enricher *search.Enricher,
	communityRepo repository.CommunityRepo,
	recorder kafka.EventRecorder,
	maxQueryLength int,
) SearchService {
	if recorder == nil {
		recorder = kafka.NopRecorder{}
	}
	return &searchServiceImpl{
		executor:       executor,
		enricher:       enricher,
		communityRepo:  communityRepo,
		recorder:       recorder,
		maxQueryLength: maxQueryLength,
	}
}

// SearchPosts 校验 -> 社区权限 -> 执行 -> 补全社区名 -> 上报
func (s *searchServiceImpl) SearchPosts(ctx context.Context, q *SearchQuery) ([]*search.Result, error) {
	start := time.Now()
	if q == nil {
		q = &SearchQuery{}
	}

	query, err := s.normalize(q)
	if err != nil {
		metrics.ObserveSearchFailure(sortLabel(q.SortBy), metrics.StatusInvalid)
		return nil, err
	}

	exclude, err := s.checkCommunityAccess(ctx, q.CommunityID, q.UserID)
	if err != nil {
		status := metrics.StatusError
		if errors.Is(err, ErrCommunityForbidden) {
			status = metrics.StatusDenied
		}
		metrics.ObserveSearchFailure(string(query.SortBy), status)
		return nil, err
	}
	query.ExcludeCommunityIDs = exclude

	results, err := s.executor.Execute(ctx, query)
	if err != nil {
		metrics.ObserveSearchFailure(string(query.SortBy), metrics.StatusError)
		log.ErrorContext(ctx, "search posts failed", "err", err)
		return nil, err
	}
	results = s.enricher.Enrich(ctx, results)

	metrics.ObserveSearch(string(query.SortBy), time.Since(start), len(results))
	// 翻页不重复计入热搜
	if query.Offset == 0 {
		s.recorder.Record(ctx, &kafka.SearchEvent{
			UserID:      q.UserID,
			Query:       query.Text,
			TagFilters:  query.TagFilters,
			CommunityID: q.CommunityID,
			SortBy:      string(query.SortBy),
			ResultCount: len(results),
			TraceID:     logger.TraceID(ctx),
			OccurredAt:  time.Now(),
		})
	}
	return results, nil
}

// normalize 校验请求并转换为执行器输入，任何数据访问之前完成
func (s *searchServiceImpl) normalize(q *SearchQuery) (*search.Query, error) {
	text := strings.TrimSpace(q.Query)
	if s.maxQueryLength > 0 && utf8.RuneCountInString(text) > s.maxQueryLength {
		return nil, &ValidationError{Field: "q", Msg: fmt.Sprintf("搜索词长度不能超过 %d 个字符", s.maxQueryLength)}
	}
	if err := util.ValidateDTO(q); err != nil {
		return nil, toValidationError(err)
	}

	query := &search.Query{
		Text:        text,
		TagFilters:  q.TagFilters,
		CommunityID: q.CommunityID,
		Limit:       consts.DefaultSearchLimit,
		SortBy:      search.SortByRelevance,
	}
	if q.Limit != nil {
		query.Limit = *q.Limit
	}
	if q.Offset != nil {
		query.Offset = *q.Offset
	}
	if q.SortBy != "" {
		query.SortBy = q.SortBy
	}
	if s.executor.FoldTagCase() {
		query.TagFilters = foldTagFilters(q.TagFilters)
	}
	return query, nil
}

// checkCommunityAccess 指定社区时校验私有社区成员身份，未指定时返回需要排除的私有社区
func (s *searchServiceImpl) checkCommunityAccess(ctx context.Context, communityID *uint64, userID uint64) ([]uint64, error) {
	if communityID == nil {
		hidden, err := s.communityRepo.GetHiddenCommunityIDs(ctx, userID)
		if err != nil {
			return nil, &search.DataAccessError{Op: "load hidden communities", Err: err}
		}
		return hidden, nil
	}

	community, err := s.communityRepo.GetCommunity(ctx, *communityID)
	if err != nil {
		return nil, &search.DataAccessError{Op: "load community", Err: err}
	}
	// 社区不存在时交给执行器返回空结果
	if community == nil || !community.IsPrivate {
		return nil, nil
	}
	member, err := s.communityRepo.IsMember(ctx, *communityID, userID)
	if err != nil {
		return nil, &search.DataAccessError{Op: "check community membership", Err: err}
	}
	if !member {
		return nil, ErrCommunityForbidden
	}
	return nil, nil
}

func toValidationError(err error) error {
	var fe *util.FieldError
	if !errors.As(err, &fe) {
		return &ValidationError{Field: "request", Msg: err.Error()}
	}
	var msg string
	switch fe.BaseName() {
	case "limit":
		msg = fmt.Sprintf("limit 必须在 1 到 %d 之间", consts.MaxSearchLimit)
	case "offset":
		msg = "offset 不能为负数"
	case "sortBy":
		msg = "sortBy 必须为 relevance 或 time"
	case "operator":
		msg = "标签运算符必须为 AND、OR 或 NOT"
	case "tags":
		if fe.Tag == "required" {
			msg = "标签不能为空字符串"
		} else {
			msg = "标签组不能为空"
		}
	default:
		msg = "参数不合法"
	}
	return &ValidationError{Field: fe.Field, Msg: msg}
}

func foldTagFilters(filters []search.TagFilter) []search.TagFilter {
	if len(filters) == 0 {
		return filters
	}
	out := make([]search.TagFilter, len(filters))
	for i, f := range filters {
		tags := make([]string, len(f.Tags))
		for j, t := range f.Tags {
			tags[j] = strings.ToLower(t)
		}
		out[i] = search.TagFilter{Tags: tags, Operator: f.Operator}
	}
	return out
}

// sortLabel 非法取值统一归为 invalid，避免指标标签基数失控
func sortLabel(s search.SortBy) string {
	switch {
	case s == "":
		return string(search.SortByRelevance)
	case s.Valid():
		return string(s)
	default:
		return "invalid"
	}
}
