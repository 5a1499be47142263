package job

import (
	"context"
	log "log/slog"

	"github.com/KOVY310/chaos-canvas/internal/pkg/logger"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/google/uuid"
)

// LeagueJob 周期性重建国家排行榜缓存
type LeagueJob struct {
	viralSvc service.ViralService
}

func NewLeagueJob(viralSvc service.ViralService) *LeagueJob {
	return &LeagueJob{viralSvc: viralSvc}
}

func (s *LeagueJob) Run() {
	traceID := "job-league-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.viralSvc.RebuildLeague(ctx); err != nil {
		log.ErrorContext(ctx, "rebuild league error", "err", err)
		return
	}

	log.InfoContext(ctx, "LeagueJob finished")
}
