package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/KOVY310/chaos-canvas/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepo 是余额、助推计数、市场价与交易流水的唯一写入口。
// 所有写操作同步落库；多步资金变更通过 InTx 放进同一个数据库事务。
type LedgerRepo interface {
	// InTx 在单个数据库事务内执行 fn，fn 收到的是绑定事务的 LedgerRepo
	InTx(ctx context.Context, fn func(tx LedgerRepo) error) error

	GetBalance(ctx context.Context, userID string) (int64, error)
	// SetBalance 仅供上层在校验 newBalance >= 0 后调用，负值直接拒绝
	SetBalance(ctx context.Context, userID string, newBalance int64) error
	// DebitBalance 条件扣减：余额足够才会扣减，返回是否命中。
	// 这是并发自助推下防止透支的关键原子操作。
	DebitBalance(ctx context.Context, userID string, amount int64) (bool, error)
	// CreditBalance 原子加款并累计 total_earned，返回是否命中目标用户
	CreditBalance(ctx context.Context, userID string, amount int64) (bool, error)
	// AddBalance 原子加款但不计入 total_earned，用于充值和档案合并划转
	AddBalance(ctx context.Context, userID string, amount int64) (bool, error)

	RecordTransaction(ctx context.Context, txn *model.Transaction) error
	GetUserTransactions(ctx context.Context, userID string, limit int) ([]*model.Transaction, error)

	// LockContribution 行锁读取贡献，供事务内读改写使用
	LockContribution(ctx context.Context, contributionID string) (*model.Contribution, error)
	IncrementBoostCount(ctx context.Context, contributionID string) (int, error)
	SetMarketPrice(ctx context.Context, contributionID string, newPrice float64) error

	// CreateInvestment 投资本金流出属于账本事实，与扣款共用同一事务
	CreateInvestment(ctx context.Context, investment *model.Investment) error
}

type ledgerRepoImpl struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepo {
	return &ledgerRepoImpl{db: db}
}

func (s *ledgerRepoImpl) InTx(ctx context.Context, fn func(tx LedgerRepo) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepoImpl{db: tx})
	})
}

func (s *ledgerRepoImpl) GetBalance(ctx context.Context, userID string) (int64, error) {
	var user model.User
	result := s.db.WithContext(ctx).Select("chaos_coins").First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return 0, result.Error
	}
	return user.ChaosCoins, nil
}

func (s *ledgerRepoImpl) SetBalance(ctx context.Context, userID string, newBalance int64) error {
	if newBalance < 0 {
		return fmt.Errorf("negative balance %d for user %s: %w", newBalance, userID, ErrInvalidState)
	}
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("chaos_coins", newBalance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

func (s *ledgerRepoImpl) DebitBalance(ctx context.Context, userID string, amount int64) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("non-positive debit %d: %w", amount, ErrInvalidState)
	}
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND chaos_coins >= ?", userID, amount).
		Update("chaos_coins", gorm.Expr("chaos_coins - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ledgerRepoImpl) CreditBalance(ctx context.Context, userID string, amount int64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("negative credit %d: %w", amount, ErrInvalidState)
	}
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"chaos_coins":  gorm.Expr("chaos_coins + ?", amount),
			"total_earned": gorm.Expr("total_earned + ?", amount),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ledgerRepoImpl) AddBalance(ctx context.Context, userID string, amount int64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("negative credit %d: %w", amount, ErrInvalidState)
	}
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("chaos_coins", gorm.Expr("chaos_coins + ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *ledgerRepoImpl) RecordTransaction(ctx context.Context, txn *model.Transaction) error {
	if result := s.db.WithContext(ctx).Create(txn); result.Error != nil {
		return fmt.Errorf("failed to append transaction: %w", result.Error)
	}
	return nil
}

func (s *ledgerRepoImpl) GetUserTransactions(ctx context.Context, userID string, limit int) ([]*model.Transaction, error) {
	txns := make([]*model.Transaction, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns)
	if result.Error != nil {
		return nil, result.Error
	}
	return txns, nil
}

func (s *ledgerRepoImpl) LockContribution(ctx context.Context, contributionID string) (*model.Contribution, error) {
	contribution := &model.Contribution{}
	result := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(contribution, "id = ?", contributionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contribution %s: %w", contributionID, ErrNotFound)
		}
		return nil, result.Error
	}
	return contribution, nil
}

func (s *ledgerRepoImpl) IncrementBoostCount(ctx context.Context, contributionID string) (int, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Where("id = ?", contributionID).
		Update("boost_count", gorm.Expr("boost_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("contribution %s: %w", contributionID, ErrNotFound)
	}

	var contribution model.Contribution
	if err := s.db.WithContext(ctx).Select("boost_count").First(&contribution, "id = ?", contributionID).Error; err != nil {
		return 0, err
	}
	return contribution.BoostCount, nil
}

func (s *ledgerRepoImpl) SetMarketPrice(ctx context.Context, contributionID string, newPrice float64) error {
	if newPrice <= 0 {
		return fmt.Errorf("non-positive market price %.2f: %w", newPrice, ErrInvalidState)
	}
	result := s.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Where("id = ?", contributionID).
		Update("market_price", newPrice)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("contribution %s: %w", contributionID, ErrNotFound)
	}
	return nil
}

func (s *ledgerRepoImpl) CreateInvestment(ctx context.Context, investment *model.Investment) error {
	if result := s.db.WithContext(ctx).Create(investment); result.Error != nil {
		return result.Error
	}
	return nil
}
