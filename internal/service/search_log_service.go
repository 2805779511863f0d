package service

import (
	"Agora/internal/api/dto"
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/mongo"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/search"
	"context"
	"fmt"

	"github.com/jinzhu/copier"
)

// SearchLogService 热搜与个人搜索历史
type SearchLogService interface {
	GetHotQueries(ctx context.Context, size *int) ([]*dto.HotQueryDTO, error)
	GetUserHistory(ctx context.Context, userID uint64, size *int) ([]*dto.SearchHistoryDTO, error)
	RemoveHotQuery(ctx context.Context, query string) error
}

type searchLogServiceImpl struct {
	hotStore *redis.HotQueryStore
	logRepo  mongo.SearchLogRepo
}

func NewSearchLogService(hotStore *redis.HotQueryStore, logRepo mongo.SearchLogRepo) SearchLogService {
	return &searchLogServiceImpl{
		hotStore: hotStore,
		logRepo:  logRepo,
	}
}

func (s *searchLogServiceImpl) GetHotQueries(ctx context.Context, size *int) ([]*dto.HotQueryDTO, error) {
	n, err := sizeOrDefault(size, consts.DefaultHotSize, consts.MaxHotSize)
	if err != nil {
		return nil, err
	}

	hot, err := s.hotStore.Top(ctx, n)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.HotQueryDTO, 0, len(hot))
	for _, h := range hot {
		list = append(list, &dto.HotQueryDTO{Query: h.Query, Score: h.Score})
	}
	return list, nil
}

func (s *searchLogServiceImpl) GetUserHistory(ctx context.Context, userID uint64, size *int) ([]*dto.SearchHistoryDTO, error) {
	if userID == 0 {
		return nil, ErrLoginRequired
	}
	n, err := sizeOrDefault(size, consts.DefaultHistorySize, consts.MaxHistorySize)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.GetRecentByUser(ctx, userID, int64(n))
	if err != nil {
		return nil, err
	}
	list := make([]*dto.SearchHistoryDTO, 0, len(logs))
	if err = copier.Copy(&list, &logs); err != nil {
		return nil, err
	}
	return list, nil
}

// RemoveHotQuery 下架热搜词，query 按热搜统计的规则归一化
func (s *searchLogServiceImpl) RemoveHotQuery(ctx context.Context, query string) error {
	normalized := search.NormalizeQuery(query)
	if normalized == "" {
		return &ValidationError{Field: "query", Msg: "热搜词不能为空"}
	}
	ok, err := s.hotStore.Remove(ctx, normalized)
	if err != nil {
		return err
	}
	if !ok {
		return ErrHotQueryNotFound
	}
	return nil
}

func sizeOrDefault(size *int, def, max int) (int, error) {
	if size == nil {
		return def, nil
	}
	if *size < 1 || *size > max {
		return 0, &ValidationError{Field: "size", Msg: fmt.Sprintf("size 必须在 1 到 %d 之间", max)}
	}
	return *size, nil
}
