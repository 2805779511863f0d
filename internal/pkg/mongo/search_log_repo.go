package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SearchLogRepo interface {
	EnsureIndexes(ctx context.Context) error
	CreateSearchLog(ctx context.Context, log *SearchLogModel) error
	GetRecentByUser(ctx context.Context, userID uint64, limit int64) ([]*SearchLogModel, error)
}

type searchLogRepoImpl struct {
	col *mongo.Collection
}

func NewSearchLogRepo(db *mongo.Database) SearchLogRepo {
	return &searchLogRepoImpl{
		col: db.Collection("search_logs"),
	}
}

func (s *searchLogRepoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	return err
}

// CreateSearchLog 同一 event_id 已存在时视为成功
func (s *searchLogRepoImpl) CreateSearchLog(ctx context.Context, log *SearchLogModel) error {
	_, err := s.col.InsertOne(ctx, log)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// GetRecentByUser 用户最近的搜索，按时间倒序
func (s *searchLogRepoImpl) GetRecentByUser(ctx context.Context, userID uint64, limit int64) ([]*SearchLogModel, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*SearchLogModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
