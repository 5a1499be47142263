package service

import (
	"context"
	"errors"
	log "log/slog"
	"math"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/pkg/notifier"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

type EconomyService interface {
	// Boost 花费金币助推贡献：扣款、计数、作者分成、价格上浮在同一事务内完成
	Boost(ctx context.Context, userID, contributionID string, amount int64) (*dto.BoostResultDTO, error)
	// Invest 按当前市场价买入贡献份额
	Invest(ctx context.Context, userID, contributionID string, amount int64) (*model.Investment, error)
	PurchaseCoins(ctx context.Context, userID, packageID string) (*dto.PurchaseResultDTO, error)
	GetTransactions(ctx context.Context, userID string, limit int) ([]*model.Transaction, error)
	GetInvestments(ctx context.Context, userID string) ([]*model.Investment, error)
	GetBalance(ctx context.Context, userID string) (*dto.BalanceDTO, error)
}

type economyServiceImpl struct {
	ledger           repository.LedgerRepo
	userRepo         repository.UserRepo
	contributionRepo repository.ContributionRepo
	investmentRepo   repository.InvestmentRepo
	hub              *notifier.Hub
}

func NewEconomyService(
	ledger repository.LedgerRepo,
	userRepo repository.UserRepo,
	contributionRepo repository.ContributionRepo,
	investmentRepo repository.InvestmentRepo,
	hub *notifier.Hub,
) EconomyService {
	return &economyServiceImpl{
		ledger:           ledger,
		userRepo:         userRepo,
		contributionRepo: contributionRepo,
		investmentRepo:   investmentRepo,
		hub:              hub,
	}
}

func (s *economyServiceImpl) Boost(ctx context.Context, userID, contributionID string, amount int64) (*dto.BoostResultDTO, error) {
	if amount <= 0 {
		return nil, ErrParamInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	contribution, err := s.contributionRepo.GetContribution(ctx, contributionID)
	if err != nil || contribution == nil {
		return nil, ErrContributionNotFound
	}

	// 快速路径余额检查，真正的防透支由事务内的条件扣减保证
	if user.ChaosCoins < amount {
		return nil, ErrInsufficientCoins
	}

	result := &dto.BoostResultDTO{ContributionID: contributionID}

	err = s.ledger.InTx(ctx, func(tx repository.LedgerRepo) error {
		ok, err := tx.DebitBalance(ctx, userID, amount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientCoins
		}

		locked, err := tx.LockContribution(ctx, contributionID)
		if err != nil {
			return err
		}

		newCount, err := tx.IncrementBoostCount(ctx, contributionID)
		if err != nil {
			return err
		}

		// 作者账号已消失时分成直接销毁，不回滚助推
		authorShare := int64(math.Floor(float64(amount) * consts.AuthorShareRatio))
		authorFound := false
		if authorShare > 0 {
			authorFound, err = tx.CreditBalance(ctx, locked.UserID, authorShare)
			if err != nil {
				return err
			}
		} else if _, err := tx.GetBalance(ctx, locked.UserID); err == nil {
			authorFound = true
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		// 零分成也记一条 earned 流水，每次助推固定配对两条流水
		if authorFound {
			earnedTxn := &model.Transaction{
				ID:             uuid.NewString(),
				UserID:         locked.UserID,
				Type:           model.TxTypeEarned,
				Amount:         authorShare,
				ContributionID: &contributionID,
				Description:    "boost share received",
				CreatedAt:      time.Now(),
			}
			if err := tx.RecordTransaction(ctx, earnedTxn); err != nil {
				return err
			}
		}

		boostTxn := &model.Transaction{
			ID:             uuid.NewString(),
			UserID:         userID,
			Type:           model.TxTypeBoost,
			Amount:         -amount,
			ContributionID: &contributionID,
			Description:    "boosted a contribution",
			CreatedAt:      time.Now(),
		}
		if err := tx.RecordTransaction(ctx, boostTxn); err != nil {
			return err
		}

		newPrice := math.Round(locked.MarketPrice*consts.BoostPriceGrowth*100) / 100
		if err := tx.SetMarketPrice(ctx, contributionID, newPrice); err != nil {
			return err
		}

		result.BoostCount = newCount
		result.MarketPrice = newPrice
		result.AuthorShare = authorShare
		return nil
	})
	if err != nil {
		return nil, err
	}

	if balance, err := s.ledger.GetBalance(ctx, userID); err != nil {
		log.WarnContext(ctx, "read balance after boost failed", "user_id", userID, "err", err)
	} else {
		result.Balance = balance
	}

	s.hub.Publish(contribution.LayerID, &dto.ContributionUpdatedEvent{
		Type:           dto.WsTypeContributionUpdated,
		ContributionID: contributionID,
		BoostCount:     result.BoostCount,
		MarketPrice:    result.MarketPrice,
	})

	log.InfoContext(ctx, "contribution boosted",
		"user_id", userID, "contribution_id", contributionID,
		"amount", amount, "new_price", result.MarketPrice)

	return result, nil
}

func (s *economyServiceImpl) Invest(ctx context.Context, userID, contributionID string, amount int64) (*model.Investment, error) {
	if amount <= 0 {
		return nil, ErrParamInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	contribution, err := s.contributionRepo.GetContribution(ctx, contributionID)
	if err != nil || contribution == nil {
		return nil, ErrContributionNotFound
	}

	if user.ChaosCoins < amount {
		return nil, ErrInsufficientCoins
	}

	var investment *model.Investment

	err = s.ledger.InTx(ctx, func(tx repository.LedgerRepo) error {
		ok, err := tx.DebitBalance(ctx, userID, amount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientCoins
		}

		// 锁定贡献行，买入价快照与扣款落在同一时刻
		locked, err := tx.LockContribution(ctx, contributionID)
		if err != nil {
			return err
		}

		investment = &model.Investment{
			ID:             uuid.NewString(),
			UserID:         userID,
			ContributionID: contributionID,
			Amount:         amount,
			PurchasePrice:  locked.MarketPrice,
			CurrentValue:   float64(amount),
			CreatedAt:      time.Now(),
		}
		if err := tx.CreateInvestment(ctx, investment); err != nil {
			return err
		}

		investTxn := &model.Transaction{
			ID:             uuid.NewString(),
			UserID:         userID,
			Type:           model.TxTypeInvestment,
			Amount:         -amount,
			ContributionID: &contributionID,
			Description:    "invested in a contribution",
			CreatedAt:      time.Now(),
		}
		return tx.RecordTransaction(ctx, investTxn)
	})
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "investment created",
		"user_id", userID, "contribution_id", contributionID, "amount", amount)

	return investment, nil
}

func (s *economyServiceImpl) PurchaseCoins(ctx context.Context, userID, packageID string) (*dto.PurchaseResultDTO, error) {
	coins, ok := consts.CoinPackages[packageID]
	if !ok {
		return nil, ErrPackageInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	err = s.ledger.InTx(ctx, func(tx repository.LedgerRepo) error {
		credited, err := tx.AddBalance(ctx, userID, coins)
		if err != nil {
			return err
		}
		if !credited {
			return ErrUserNotFound
		}

		purchaseTxn := &model.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        model.TxTypePurchase,
			Amount:      coins,
			Description: "purchased coin package " + packageID,
			CreatedAt:   time.Now(),
		}
		return tx.RecordTransaction(ctx, purchaseTxn)
	})
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "coins purchased", "user_id", userID, "package", packageID, "credited", coins)

	return &dto.PurchaseResultDTO{Credited: coins, Balance: balance}, nil
}

func (s *economyServiceImpl) GetTransactions(ctx context.Context, userID string, limit int) ([]*model.Transaction, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	if limit <= 0 || limit > consts.DefaultTransactionLimit {
		limit = consts.DefaultTransactionLimit
	}
	return s.ledger.GetUserTransactions(ctx, userID, limit)
}

func (s *economyServiceImpl) GetInvestments(ctx context.Context, userID string) ([]*model.Investment, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	return s.investmentRepo.GetInvestmentsByUser(ctx, userID)
}

func (s *economyServiceImpl) GetBalance(ctx context.Context, userID string) (*dto.BalanceDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.BalanceDTO{ChaosCoins: user.ChaosCoins, TotalEarned: user.TotalEarned}, nil
}
