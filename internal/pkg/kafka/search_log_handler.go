package kafka

import (
	"Agora/internal/pkg/mongo"
	"Agora/internal/pkg/search"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

type HotQueryCounter interface {
	IncrOnce(ctx context.Context, eventID, query string) (bool, error)
}

type SearchLogWriter interface {
	CreateSearchLog(ctx context.Context, log *mongo.SearchLogModel) error
}

// SearchLogHandler 消费搜索事件：落库搜索历史，累加热搜计数
type SearchLogHandler struct {
	hot  HotQueryCounter
	logs SearchLogWriter
}

func NewSearchLogHandler(hot HotQueryCounter, logs SearchLogWriter) *SearchLogHandler {
	return &SearchLogHandler{hot: hot, logs: logs}
}

func (s *SearchLogHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("search log consumer setup")
	return nil
}

func (s *SearchLogHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("search log consumer cleanup")
	return nil
}

func (s *SearchLogHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-search consume claim", "partition", claim.Partition())
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-search process batch error", "err", err)
		return err
	}
	log.Info("topic-search consume claim end")
	return nil
}

func (s *SearchLogHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event SearchEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 格式错误的消息重试无意义
		log.Error("unmarshal search event error", "offset", msg.Offset, "err", err)
		return nil
	}

	normalized := search.NormalizeQuery(event.Query)

	// 历史与计数都按 event_id 去重，重投或批次重试时各自只生效一次
	if err := s.logs.CreateSearchLog(ctx, toSearchLogModel(&event, normalized)); err != nil {
		return err
	}
	if normalized == "" {
		return nil
	}
	counted, err := s.hot.IncrOnce(ctx, event.EventID, normalized)
	if err != nil {
		return err
	}
	if !counted {
		log.InfoContext(ctx, "duplicate search event skipped", "event_id", event.EventID)
	}
	return nil
}

func toSearchLogModel(event *SearchEvent, normalized string) *mongo.SearchLogModel {
	tags := make([]mongo.SearchLogTags, 0, len(event.TagFilters))
	for _, f := range event.TagFilters {
		tags = append(tags, mongo.SearchLogTags{Operator: string(f.Operator), Tags: f.Tags})
	}
	return &mongo.SearchLogModel{
		EventID:         event.EventID,
		UserID:          event.UserID,
		Query:           event.Query,
		NormalizedQuery: normalized,
		Tags:            tags,
		CommunityID:     event.CommunityID,
		SortBy:          event.SortBy,
		ResultCount:     event.ResultCount,
		TraceID:         event.TraceID,
		CreatedAt:       event.OccurredAt,
	}
}
