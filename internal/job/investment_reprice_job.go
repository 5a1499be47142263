package job

import (
	"context"
	log "log/slog"

	"github.com/KOVY310/chaos-canvas/internal/pkg/logger"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

// InvestmentRepriceJob 按贡献当前市场价重估全部持仓价值
type InvestmentRepriceJob struct {
	investmentRepo repository.InvestmentRepo
}

func NewInvestmentRepriceJob(investmentRepo repository.InvestmentRepo) *InvestmentRepriceJob {
	return &InvestmentRepriceJob{investmentRepo: investmentRepo}
}

func (s *InvestmentRepriceJob) Run() {
	traceID := "job-reprice-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	updated, err := s.investmentRepo.RepriceAll(ctx)
	if err != nil {
		log.ErrorContext(ctx, "reprice investments error", "err", err)
		return
	}

	log.InfoContext(ctx, "InvestmentRepriceJob finished", "updated", updated)
}
