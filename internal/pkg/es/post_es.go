package es

import (
	"Agora/internal/model"
	"time"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// PostES 帖子索引文档，字段与搜索视图一一对应
type PostES struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	Username        string    `json:"username"`
	CommunityID     uint64    `json:"community_id"`
	Status          int8      `json:"status"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Tags            []string  `json:"tags"`
	LikesCount      int       `json:"likes_count"`
	DislikesCount   int       `json:"dislikes_count"`
	CommentsCount   int       `json:"comments_count"`
	EngagementScore float64   `json:"engagement_score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromModel(p *model.Post) *PostES {
	return &PostES{
		ID:              p.ID,
		UserID:          p.UserID,
		Username:        p.User.DisplayName(),
		CommunityID:     p.CommunityID,
		Status:          p.Status,
		Title:           p.Title,
		Content:         p.Content,
		Tags:            p.TagNames(),
		LikesCount:      p.LikesCount,
		DislikesCount:   p.DislikesCount,
		CommentsCount:   p.CommentsCount,
		EngagementScore: p.EngagementScore,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// textWithWildcard 全文字段附带 wc 子字段，供子串匹配
func textWithWildcard() *types.TextProperty {
	p := types.NewTextProperty()
	p.Fields = map[string]types.Property{"wc": types.NewWildcardProperty()}
	return p
}

// postMapping 标签与社区按 keyword 精确过滤，正文与标题全文检索
func postMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":               types.NewUnsignedLongNumberProperty(),
			"user_id":          types.NewUnsignedLongNumberProperty(),
			"username":         types.NewKeywordProperty(),
			"community_id":     types.NewUnsignedLongNumberProperty(),
			"status":           types.NewByteNumberProperty(),
			"title":            textWithWildcard(),
			"content":          textWithWildcard(),
			"tags":             types.NewKeywordProperty(),
			"likes_count":      types.NewIntegerNumberProperty(),
			"dislikes_count":   types.NewIntegerNumberProperty(),
			"comments_count":   types.NewIntegerNumberProperty(),
			"engagement_score": types.NewDoubleNumberProperty(),
			"created_at":       types.NewDateProperty(),
			"updated_at":       types.NewDateProperty(),
		},
	}
}
