package cron

import (
	log "log/slog"

	"github.com/KOVY310/chaos-canvas/internal/job"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	cleanupJob   *job.CleanupJob
	viewFlushJob *job.ViewFlushJob
	leagueJob    *job.LeagueJob
	repriceJob   *job.InvestmentRepriceJob
}

func NewCronManager(
	cleanupJob *job.CleanupJob,
	viewFlushJob *job.ViewFlushJob,
	leagueJob *job.LeagueJob,
	repriceJob *job.InvestmentRepriceJob,
) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		cleanupJob:   cleanupJob,
		viewFlushJob: viewFlushJob,
		leagueJob:    leagueJob,
		repriceJob:   repriceJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 留存清理每天凌晨三点执行，避开高峰
	if _, err := s.engine.AddJob("0 0 3 * * *", s.cleanupJob); err != nil {
		return err
	}
	// 浏览增量每五分钟回写
	if _, err := s.engine.AddJob("0 */5 * * * *", s.viewFlushJob); err != nil {
		return err
	}
	// 排行榜每小时重建
	if _, err := s.engine.AddJob("0 0 * * * *", s.leagueJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.repriceJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
