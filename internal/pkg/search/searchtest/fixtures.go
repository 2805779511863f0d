// Package searchtest 提供搜索相关测试共用的 20 条帖子样例数据
package searchtest

import (
	"context"
	"fmt"
	"time"

	"Agora/internal/pkg/search"
)

const (
	CommunityFrontend uint64 = 1
	CommunityBackend  uint64 = 2
	CommunityGeneral  uint64 = 3
	CommunitySecret   uint64 = 4
)

// ApprovedCount 样例中审核通过的帖子数
const ApprovedCount = 18

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

type row struct {
	id         uint64
	title      string
	content    string
	community  uint64
	hours      int
	engagement float64
	status     int8
	tags       []string
}

var rows = []row{
	{1, "Introduction to JavaScript", "Learn the basics of variables, functions and closures.", CommunityFrontend, 10, 12.5, 1, []string{"javascript", "beginner"}},
	{2, "JavaScript Design Patterns", "Module, observer and factory patterns explained.", CommunityFrontend, 20, 30, 1, []string{"javascript", "patterns"}},
	{3, "Full Stack JavaScript App", "Building an app with Node and React end to end.", CommunityBackend, 30, 30, 1, []string{"javascript", "node", "react"}},
	{4, "React Testing with Jest", "Write reliable component tests.", CommunityFrontend, 40, 22, 1, []string{"react", "testing"}},
	{5, "Vue Testing Library", "Testing Vue components the user way.", CommunityFrontend, 50, 18, 1, []string{"vue", "testing"}},
	{6, "React Hooks Deep Dive", "useEffect, useMemo and custom hooks.", CommunityFrontend, 60, 40, 1, []string{"react", "hooks"}},
	{7, "Vue 3 Composition API", "Refs, reactive state and composables.", CommunityFrontend, 60, 40, 1, []string{"vue"}},
	{8, "Angular Testing Legacy Guide", "Karma setup for old projects.", CommunityFrontend, 5, 3, 1, []string{"angular", "testing", "deprecated"}},
	{9, "Go Concurrency Patterns", "Goroutines and channels in practice.", CommunityBackend, 70, 55, 1, []string{"go", "concurrency"}},
	{10, "Rust Ownership Explained", "Borrowing rules without tears.", CommunityBackend, 80, 9, 1, []string{"rust"}},
	{11, "PostgreSQL Indexing Tips", "B-tree versus GIN indexes.", CommunityBackend, 15, 14, 1, []string{"database", "postgres"}},
	{12, "Docker for Beginners", "Containers, images and volumes.", CommunityBackend, 25, 7, 1, []string{"docker", "beginner"}},
	{13, "Kubernetes Networking", "Services, ingress and DNS.", CommunityBackend, 90, 21, 1, []string{"kubernetes"}},
	{14, "Weekly Community Roundup", "Highlights including a JavaScript meetup recap.", CommunityGeneral, 100, 5, 1, []string{"community"}},
	{15, "JavaScript", "Everything about the language.", CommunityGeneral, 35, 60, 1, []string{"javascript"}},
	{16, "Buy Cheap Followers Now", "Limited offer!!!", CommunityGeneral, 110, -4, 1, []string{"spam"}},
	{17, "Python Testing with Pytest", "Fixtures and parametrize.", CommunityBackend, 45, 11, 1, []string{"python", "testing"}},
	{18, "Secret Lab Notes", "Internal experiments with React.", CommunitySecret, 120, 2, 1, []string{"react", "internal"}},
	{19, "Draft: Svelte Stores", "Work in progress.", CommunityFrontend, 130, 0, 0, []string{"svelte"}},
	{20, "Rejected JavaScript Spam", "Click here.", CommunityGeneral, 140, -10, 2, []string{"spam", "javascript"}},
}

// Posts 返回一份全新的样例帖子
func Posts() []*search.Post {
	posts := make([]*search.Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, &search.Post{
			ID:              r.id,
			Title:           r.title,
			Content:         r.content,
			UserID:          100 + r.id%3,
			Username:        fmt.Sprintf("user%d", 100+r.id%3),
			CommunityID:     r.community,
			CreatedAt:       at(r.hours),
			UpdatedAt:       at(r.hours),
			EngagementScore: r.engagement,
			Status:          r.status,
			Tags:            append([]string(nil), r.tags...),
		})
	}
	return posts
}

// CommunityNames 样例社区名称
func CommunityNames() map[uint64]string {
	return map[uint64]string{
		CommunityFrontend: "Frontend",
		CommunityBackend:  "Backend",
		CommunityGeneral:  "General",
		CommunitySecret:   "Secret Lab",
	}
}

// NewSource 基于样例数据的内存数据源
func NewSource() *search.MemorySource {
	return search.NewMemorySource(Posts())
}

// NameResolver 基于 map 的社区名称解析
type NameResolver struct {
	Names map[uint64]string
	Err   error
	Calls int
}

func NewNameResolver() *NameResolver {
	return &NameResolver{Names: CommunityNames()}
}

func (r *NameResolver) ResolveCommunityNames(_ context.Context, ids []uint64) (map[uint64]string, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[uint64]string, len(ids))
	for _, id := range ids {
		if name, ok := r.Names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}
