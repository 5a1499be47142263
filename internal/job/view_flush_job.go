package job

import (
	"context"
	log "log/slog"

	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/pkg/logger"
	"github.com/KOVY310/chaos-canvas/internal/pkg/redis"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

// ViewFlushJob 把 Redis 缓冲的浏览增量回写到数据库
type ViewFlushJob struct {
	contributionRepo repository.ContributionRepo
}

func NewViewFlushJob(contributionRepo repository.ContributionRepo) *ViewFlushJob {
	return &ViewFlushJob{contributionRepo: contributionRepo}
}

func (s *ViewFlushJob) Run() {
	traceID := "job-view-flush-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.ContributionViewDirtyKey + ":processing"
	// 脏集合为空时 RENAME 直接报错，本轮无事可做
	if err := redis.Rename(ctx, consts.ContributionViewDirtyKey, processingKey); err != nil {
		return
	}

	ids, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get view dirty set error", "err", err)
		return
	}

	flushed := 0
	for _, id := range ids {
		delta, err := redis.GetDelInt64(ctx, consts.ContributionViewKey+id)
		if err != nil {
			log.ErrorContext(ctx, "read view delta error", "contribution_id", id, "err", err)
			continue
		}
		if delta <= 0 {
			continue
		}

		contribution, err := s.contributionRepo.GetContribution(ctx, id)
		if err != nil {
			log.ErrorContext(ctx, "load contribution error", "contribution_id", id, "err", err)
			continue
		}
		if contribution == nil {
			// 贡献已被清理，增量丢弃
			continue
		}

		if err := s.contributionRepo.SetViewCount(ctx, id, contribution.ViewCount+delta); err != nil {
			log.ErrorContext(ctx, "flush view count error", "contribution_id", id, "err", err)
			continue
		}
		flushed++
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete view processing set error", "err", err)
	}

	log.InfoContext(ctx, "ViewFlushJob finished", "dirty_count", len(ids), "flushed", flushed)
}
