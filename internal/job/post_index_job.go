package job

import (
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/es"
	"Agora/internal/pkg/logger"
	"Agora/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	indexBatchSize = 200
	indexLockTTL   = 5 * time.Minute
)

// PostIndexJob 把 MySQL 中变更过的帖子同步到 ES，已删除的帖子从索引移除
type PostIndexJob struct {
	posts      PostScanner
	index      PostIndexer
	checkpoint CheckpointStore
	locker     Locker
	batchSize  int
}

func NewPostIndexJob(posts PostScanner, index PostIndexer, checkpoint CheckpointStore, locker Locker) *PostIndexJob {
	return &PostIndexJob{
		posts:      posts,
		index:      index,
		checkpoint: checkpoint,
		locker:     locker,
		batchSize:  indexBatchSize,
	}
}

func (s *PostIndexJob) Run() {
	traceID := "job-index-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	ok, err := s.locker.TryLock(ctx, consts.PostIndexLock, traceID, indexLockTTL, 1)
	if err != nil {
		log.ErrorContext(ctx, "post index lock error", "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "PostIndexJob skipped, another instance is running")
		return
	}
	defer func() {
		if err := s.locker.UnLock(ctx, consts.PostIndexLock, traceID); err != nil {
			log.WarnContext(ctx, "post index unlock error", "err", err)
		}
	}()

	synced, err := s.Sync(ctx)
	if err != nil {
		log.ErrorContext(ctx, "PostIndexJob failed", "synced", synced, "err", err)
		return
	}
	log.InfoContext(ctx, "PostIndexJob finished", "synced", synced)
}

// Sync 从游标处分批同步，每批成功后推进游标，返回本次同步的帖子数。
// 未审核通过的帖子同样写入索引，由候选查询按 status 过滤
func (s *PostIndexJob) Sync(ctx context.Context) (int, error) {
	cp, err := s.checkpoint.Load(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "load checkpoint")
	}

	synced := 0
	for {
		page, err := s.posts.GetPostsUpdatedSince(ctx, cp.UpdatedAt, cp.PostID, s.batchSize)
		if err != nil {
			return synced, errors.Wrap(err, "scan posts")
		}

		for _, p := range page {
			if p.IsDeleted {
				err = s.index.DeletePost(ctx, p.ID)
			} else {
				err = s.index.IndexPost(ctx, es.FromModel(p), p.UpdatedAt.UnixMilli())
			}
			if err != nil {
				return synced, errors.Wrapf(err, "sync post %d", p.ID)
			}
			synced++
		}

		if len(page) > 0 {
			last := page[len(page)-1]
			cp = redis.IndexCheckpoint{UpdatedAt: last.UpdatedAt, PostID: last.ID}
			if err = s.checkpoint.Save(ctx, cp); err != nil {
				return synced, errors.Wrap(err, "save checkpoint")
			}
		}
		if len(page) < s.batchSize {
			return synced, nil
		}
	}
}
