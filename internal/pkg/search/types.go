package search

import (
	"context"
	"fmt"
	"time"
)

// StatusApproved 审核通过、对外可见的帖子状态
const StatusApproved int8 = 1

// UnscoredSimilarity 未提供文本查询时（匹配全部）结果的相似度
const UnscoredSimilarity = 0.0

// Operator 标签过滤组的布尔运算符
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
	OperatorNot Operator = "NOT"
)

// Valid 运算符是否合法
func (o Operator) Valid() bool {
	switch o {
	case OperatorAnd, OperatorOr, OperatorNot:
		return true
	}
	return false
}

// SortBy 排序方式
type SortBy string

const (
	SortByRelevance SortBy = "relevance"
	SortByTime      SortBy = "time"
)

// Valid 排序方式是否合法
func (s SortBy) Valid() bool {
	return s == SortByRelevance || s == SortByTime
}

// TagFilter 一组标签过滤条件
type TagFilter struct {
	Tags     []string `json:"tags" validate:"min=1,dive,required"`
	Operator Operator `json:"operator" validate:"oneof=AND OR NOT"`
}

// Post 搜索视角下的只读帖子
type Post struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	UserID          uint64    `json:"user_id"`
	Username        string    `json:"username"`
	CommunityID     uint64    `json:"community_id"`
	CommunityName   string    `json:"community_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	LikesCount      int       `json:"likes_count"`
	DislikesCount   int       `json:"dislikes_count"`
	CommentsCount   int       `json:"comments_count"`
	EngagementScore float64   `json:"engagement_score"`
	Status          int8      `json:"status"`
	Tags            []string  `json:"tags"`
}

// Clone 深拷贝，避免执行器修改数据源持有的帖子
func (p *Post) Clone() *Post {
	cp := *p
	if p.Tags != nil {
		cp.Tags = append([]string(nil), p.Tags...)
	}
	return &cp
}

// Result 搜索结果：帖子 + 相似度
type Result struct {
	Post
	Similarity float64 `json:"similarity"`
}

// Query 经过门面层校验与归一化之后的执行器输入
type Query struct {
	Text                string
	TagFilters          []TagFilter
	CommunityID         *uint64
	ExcludeCommunityIDs []uint64
	Limit               int
	Offset              int
	SortBy              SortBy
}

// CandidateFilter 下推给数据源的候选集约束
type CandidateFilter struct {
	Status              int8
	CommunityID         *uint64
	ExcludeCommunityIDs []uint64
	// Text 非空时只返回标题或正文包含该文本的候选（忽略大小写）
	Text  string
	Limit int
}

// CandidateSource 候选帖子数据源
type CandidateSource interface {
	SearchCandidatePosts(ctx context.Context, filter CandidateFilter) ([]*Post, error)
}

// CommunityNameResolver 社区名称解析，缺失的 ID 不出现在返回的 map 中
type CommunityNameResolver interface {
	ResolveCommunityNames(ctx context.Context, ids []uint64) (map[uint64]string, error)
}

// DataAccessError 数据源访问失败
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("search: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}
