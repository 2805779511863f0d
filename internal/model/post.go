package model

import (
	"time"
)

type Post struct {
	ID              uint64    `gorm:"primaryKey"`
	UserID          uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	CommunityID     uint64    `gorm:"not null;default:0;index:idx_community_status" json:"community_id"`
	Title           string    `gorm:"type:varchar(255)" json:"title"`
	Content         string    `gorm:"not null" json:"content"`
	LikesCount      int       `gorm:"not null;default:0" json:"likes_count"`
	DislikesCount   int       `gorm:"not null;default:0" json:"dislikes_count"`
	CommentsCount   int       `gorm:"not null;default:0" json:"comments_count"`
	EngagementScore float64   `gorm:"not null;default:0" json:"engagement_score"`
	Status          int8      `gorm:"not null;default:0;index:idx_community_status" json:"status"` // 0:审核中, 1:已发布, 2:拒绝, 3:待人工
	IsDeleted       bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt       time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"index:idx_updated_at" json:"updated_at"`

	// 关联关系
	User User  `gorm:"foreignKey:UserID;references:ID"`
	Tags []Tag `gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID"`
}

func (Post) TableName() string {
	return "posts"
}

// TagNames 帖子的标签名列表
func (p *Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		names = append(names, tag.Name)
	}
	return names
}
