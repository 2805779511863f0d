package model

import "time"

// Tag 名称按原样存储，查询时是否忽略大小写由搜索配置决定
type Tag struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_tag_name" json:"name"`
	Description *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}
