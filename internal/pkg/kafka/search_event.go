package kafka

import (
	"Agora/internal/pkg/search"
	"time"
)

// SearchEvent 每次成功搜索投递一条，供热搜统计与搜索历史消费
type SearchEvent struct {
	EventID     string             `json:"event_id"`
	UserID      uint64             `json:"user_id"`
	Query       string             `json:"query"`
	TagFilters  []search.TagFilter `json:"tag_filters,omitempty"`
	CommunityID *uint64            `json:"community_id,omitempty"`
	SortBy      string             `json:"sort_by"`
	ResultCount int                `json:"result_count"`
	TraceID     string             `json:"trace_id,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}
