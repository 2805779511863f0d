package repository

import (
	"Agora/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommunityRepo interface {
	GetCommunity(ctx context.Context, id uint64) (*model.Community, error)
	IsMember(ctx context.Context, communityID, userID uint64) (bool, error)
	GetHiddenCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error)
	ResolveCommunityNames(ctx context.Context, ids []uint64) (map[uint64]string, error)
}

type communityRepoImpl struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepo {
	return &communityRepoImpl{
		db: db,
	}
}

// GetCommunity 社区不存在时返回 nil, nil
func (s *communityRepoImpl) GetCommunity(ctx context.Context, id uint64) (*model.Community, error) {
	var community model.Community
	err := s.db.WithContext(ctx).First(&community, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get community %d", id)
	}
	return &community, nil
}

func (s *communityRepoImpl) IsMember(ctx context.Context, communityID, userID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check community member")
	}
	return count > 0, nil
}

// GetHiddenCommunityIDs 用户不可见的私有社区（未加入的私有社区），userID 为 0 时即全部私有社区
func (s *communityRepoImpl) GetHiddenCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	joined := s.db.Model(&model.CommunityMember{}).
		Select("community_id").
		Where("user_id = ?", userID)

	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&model.Community{}).
		Where("is_private = ?", true).
		Where("id NOT IN (?)", joined).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "list hidden communities")
	}
	return ids, nil
}

// ResolveCommunityNames 批量查询社区名称，已删除的社区不出现在结果中
func (s *communityRepoImpl) ResolveCommunityNames(ctx context.Context, ids []uint64) (map[uint64]string, error) {
	names := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var communities []model.Community
	err := s.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&communities).Error
	if err != nil {
		return nil, errors.Wrap(err, "resolve community names")
	}

	for _, c := range communities {
		names[c.ID] = c.Name
	}
	return names, nil
}
