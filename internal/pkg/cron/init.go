package cron

import (
	"fmt"
	log "log/slog"
)

func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	mgr.Start()
	log.Info("cron jobs started")
	return nil
}
