package search

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
)

// MemorySource 内存数据源，按创建时间倒序（同时间按 ID 升序）返回候选的拷贝
type MemorySource struct {
	mu    sync.RWMutex
	posts []*Post
}

func NewMemorySource(posts []*Post) *MemorySource {
	s := &MemorySource{}
	s.Replace(posts)
	return s
}

// Replace 整体替换数据快照
func (s *MemorySource) Replace(posts []*Post) {
	cp := make([]*Post, 0, len(posts))
	for _, p := range posts {
		cp = append(cp, p.Clone())
	}
	slices.SortFunc(cp, func(a, b *Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	s.mu.Lock()
	s.posts = cp
	s.mu.Unlock()
}

func (s *MemorySource) SearchCandidatePosts(ctx context.Context, filter CandidateFilter) ([]*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	text := strings.ToLower(filter.Text)
	out := make([]*Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.Status != filter.Status {
			continue
		}
		if filter.CommunityID != nil && p.CommunityID != *filter.CommunityID {
			continue
		}
		if slices.Contains(filter.ExcludeCommunityIDs, p.CommunityID) {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(p.Title), text) &&
			!strings.Contains(strings.ToLower(p.Content), text) {
			continue
		}
		out = append(out, p.Clone())
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}
