package repository

import (
	"context"

	"github.com/KOVY310/chaos-canvas/internal/model"

	"gorm.io/gorm"
)

type InvestmentRepo interface {
	GetInvestmentsByUser(ctx context.Context, userID string) ([]*model.Investment, error)
	GetInvestmentsByContribution(ctx context.Context, contributionID string) ([]*model.Investment, error)
	// RepriceAll 按当前市场价重估全部持仓：current_value = amount * market_price / purchase_price
	RepriceAll(ctx context.Context) (int64, error)
}

type investmentRepoImpl struct {
	db *gorm.DB
}

func NewInvestmentRepo(db *gorm.DB) InvestmentRepo {
	return &investmentRepoImpl{db: db}
}

func (s *investmentRepoImpl) GetInvestmentsByUser(ctx context.Context, userID string) ([]*model.Investment, error) {
	investments := make([]*model.Investment, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&investments)
	if result.Error != nil {
		return nil, result.Error
	}
	return investments, nil
}

func (s *investmentRepoImpl) GetInvestmentsByContribution(ctx context.Context, contributionID string) ([]*model.Investment, error) {
	investments := make([]*model.Investment, 0)
	result := s.db.WithContext(ctx).
		Where("contribution_id = ?", contributionID).
		Find(&investments)
	if result.Error != nil {
		return nil, result.Error
	}
	return investments, nil
}

func (s *investmentRepoImpl) RepriceAll(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Exec(
		"UPDATE investments i " +
			"JOIN contributions c ON c.id = i.contribution_id " +
			"SET i.current_value = ROUND(i.amount * c.market_price / i.purchase_price, 2) " +
			"WHERE i.purchase_price > 0",
	)
	return result.RowsAffected, result.Error
}
