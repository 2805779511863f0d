package repository_test

import (
	"fmt"
	"testing"

	"Agora/internal/model"
	"Agora/internal/pkg/search/searchtest"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB 建立内存库并写入样例社区、用户、标签与帖子
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.CommunityMember{},
		&model.Tag{},
		&model.Post{},
	))
	seed(t, db)
	return db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	for id, name := range searchtest.CommunityNames() {
		require.NoError(t, db.Create(&model.Community{
			ID:        id,
			Name:      name,
			IsPrivate: id == searchtest.CommunitySecret,
			OwnerID:   100,
		}).Error)
	}
	require.NoError(t, db.Create(&model.CommunityMember{
		CommunityID: searchtest.CommunitySecret,
		UserID:      101,
	}).Error)

	for _, id := range []uint64{100, 101, 102} {
		name := fmt.Sprintf("user%d", id)
		require.NoError(t, db.Create(&model.User{ID: id, Username: &name}).Error)
	}

	tags := map[string]model.Tag{}
	for _, p := range searchtest.Posts() {
		post := model.Post{
			ID:              p.ID,
			UserID:          p.UserID,
			CommunityID:     p.CommunityID,
			Title:           p.Title,
			Content:         p.Content,
			EngagementScore: p.EngagementScore,
			Status:          p.Status,
			CreatedAt:       p.CreatedAt,
			UpdatedAt:       p.UpdatedAt,
		}
		for _, name := range p.Tags {
			tag, ok := tags[name]
			if !ok {
				tag = model.Tag{Name: name}
				require.NoError(t, db.Create(&tag).Error)
				tags[name] = tag
			}
			post.Tags = append(post.Tags, tag)
		}
		require.NoError(t, db.Create(&post).Error)
	}
}
