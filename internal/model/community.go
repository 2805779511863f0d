package model

import "time"

type Community struct {
	ID          uint64  `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_community_name"`
	Description *string `gorm:"type:varchar(500)"`
	IsPrivate   bool    `gorm:"type:tinyint(1);not null;default:0"`
	OwnerID     uint64  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Community) TableName() string {
	return "communities"
}

// CommunityMember 社区成员，私有社区仅成员可见
type CommunityMember struct {
	CommunityID uint64 `gorm:"primaryKey" json:"communityId"`
	UserID      uint64 `gorm:"primaryKey;index:idx_member_user" json:"userId"`
	CreatedAt   time.Time
}

func (CommunityMember) TableName() string {
	return "community_members"
}
