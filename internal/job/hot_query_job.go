package job

import (
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// HotQueryDecayJob 热搜分数定期减半，长尾词逐渐淘汰
type HotQueryDecayJob struct {
	store  HotDecayer
	locker Locker
}

func NewHotQueryDecayJob(store HotDecayer, locker Locker) *HotQueryDecayJob {
	return &HotQueryDecayJob{store: store, locker: locker}
}

func (s *HotQueryDecayJob) Run() {
	traceID := "job-hot-decay-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	ok, err := s.locker.TryLock(ctx, consts.HotDecayLock, traceID, time.Minute, 1)
	if err != nil || !ok {
		log.InfoContext(ctx, "HotQueryDecayJob skipped", "err", err)
		return
	}
	defer func() {
		_ = s.locker.UnLock(ctx, consts.HotDecayLock, traceID)
	}()

	err = s.store.Decay(ctx, consts.HotQueryDecayFactor, consts.HotQueryMinScore, consts.HotQueryKeep)
	if err != nil {
		log.ErrorContext(ctx, "HotQueryDecayJob failed", "err", err)
		return
	}
	log.InfoContext(ctx, "HotQueryDecayJob finished")
}
