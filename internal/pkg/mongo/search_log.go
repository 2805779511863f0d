package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchLogModel 一次搜索请求的记录
type SearchLogModel struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID         string             `bson:"event_id" json:"eventId"` // 唯一索引，重复投递只落库一次
	UserID          uint64             `bson:"user_id" json:"userId"` // 匿名搜索为 0
	Query           string             `bson:"query" json:"query"`
	NormalizedQuery string             `bson:"normalized_query" json:"normalizedQuery"`
	Tags            []SearchLogTags    `bson:"tags,omitempty" json:"tags,omitempty"`
	CommunityID     *uint64            `bson:"community_id,omitempty" json:"communityId,omitempty"`
	SortBy          string             `bson:"sort_by" json:"sortBy"`
	ResultCount     int                `bson:"result_count" json:"resultCount"`
	TraceID         string             `bson:"trace_id,omitempty" json:"traceId,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

type SearchLogTags struct {
	Operator string   `bson:"operator" json:"operator"`
	Tags     []string `bson:"tags" json:"tags"`
}
