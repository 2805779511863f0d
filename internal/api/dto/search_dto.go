package dto

import "time"

// SearchPostsDTO 帖子搜索查询参数，标签为逗号分隔
type SearchPostsDTO struct {
	Query       string  `form:"q"`
	OrTags      string  `form:"orTags"`
	AndTags     string  `form:"andTags"`
	NotTags     string  `form:"notTags"`
	CommunityID *uint64 `form:"communityId"`
	Limit       *int    `form:"limit"`
	Offset      *int    `form:"offset"`
	SortBy      string  `form:"sortBy"`
}

type SizeDTO struct {
	Size *int `form:"size"`
}

type HotQueryDTO struct {
	Query string  `json:"query"`
	Score float64 `json:"score"`
}

type SearchHistoryTagDTO struct {
	Operator string   `json:"operator"`
	Tags     []string `json:"tags"`
}

type SearchHistoryDTO struct {
	Query       string                 `json:"query"`
	Tags        []SearchHistoryTagDTO `json:"tags"`
	CommunityID *uint64                `json:"community_id,omitempty"`
	SortBy      string                 `json:"sort_by"`
	ResultCount int                    `json:"result_count"`
	CreatedAt   time.Time              `json:"created_at"`
}
