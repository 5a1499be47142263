package job

import (
	"context"
	log "log/slog"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/pkg/logger"
	"github.com/KOVY310/chaos-canvas/internal/pkg/ratelimit"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

// CleanupJob 按保留期删除过期贡献，顺带回收限流器的过期窗口
type CleanupJob struct {
	contributionRepo repository.ContributionRepo
	limiter          *ratelimit.Limiter
}

func NewCleanupJob(contributionRepo repository.ContributionRepo, limiter *ratelimit.Limiter) *CleanupJob {
	return &CleanupJob{
		contributionRepo: contributionRepo,
		limiter:          limiter,
	}
}

func (s *CleanupJob) Run() {
	traceID := "job-cleanup-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	cutoff := time.Now().Add(-consts.ContributionRetention)
	deleted, err := s.contributionRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "delete expired contributions error", "err", err)
		return
	}

	purged := s.limiter.Purge()

	log.InfoContext(ctx, "CleanupJob finished", "deleted_contributions", deleted, "purged_windows", purged)
}
