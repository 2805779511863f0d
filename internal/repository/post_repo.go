package repository

import (
	"Agora/internal/model"
	"Agora/internal/pkg/search"
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostRepo interface {
	SearchCandidatePosts(ctx context.Context, filter search.CandidateFilter) ([]*search.Post, error)
	GetPostsUpdatedSince(ctx context.Context, since time.Time, afterID uint64, limit int) ([]*model.Post, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// likeEscaper 转义 LIKE 通配符，转义符为 '!'
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchCandidatePosts 按状态、社区范围与文本拉取候选帖子，附带作者与标签
func (s *PostRepoImpl) SearchCandidatePosts(ctx context.Context, filter search.CandidateFilter) ([]*search.Post, error) {
	query := s.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		Where("status = ? AND is_deleted = ?", filter.Status, false)

	if filter.CommunityID != nil {
		query = query.Where("community_id = ?", *filter.CommunityID)
	}
	if len(filter.ExcludeCommunityIDs) > 0 {
		query = query.Where("community_id NOT IN ?", filter.ExcludeCommunityIDs)
	}
	if filter.Text != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Text)) + "%"
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(content) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var posts []*model.Post
	err := query.Order("created_at DESC").Order("id ASC").Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "query candidate posts")
	}

	out := make([]*search.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToSearchPost(p))
	}
	return out, nil
}

// GetPostsUpdatedSince 按 (updated_at, id) 游标顺序扫描变更过的帖子，包含已删除与未审核的
func (s *PostRepoImpl) GetPostsUpdatedSince(ctx context.Context, since time.Time, afterID uint64, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		Where("updated_at > ? OR (updated_at = ? AND id > ?)", since, since, afterID).
		Order("updated_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "scan updated posts")
	}
	return posts, nil
}

// ToSearchPost 数据库模型转换为搜索视图
func ToSearchPost(p *model.Post) *search.Post {
	return &search.Post{
		ID:              p.ID,
		Title:           p.Title,
		Content:         p.Content,
		UserID:          p.UserID,
		Username:        p.User.DisplayName(),
		CommunityID:     p.CommunityID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		LikesCount:      p.LikesCount,
		DislikesCount:   p.DislikesCount,
		CommentsCount:   p.CommentsCount,
		EngagementScore: p.EngagementScore,
		Status:          p.Status,
		Tags:            p.TagNames(),
	}
}
