package service

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

type UserService interface {
	// CreateAnonymous 创建匿名访客档案并发放初始金币
	CreateAnonymous(ctx context.Context, req *dto.AnonymousCreateReq) (*model.User, error)
	Register(ctx context.Context, userID string, req *dto.RegisterReq) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	// MergeProfiles 把匿名档案的余额与贡献并入注册账号
	MergeProfiles(ctx context.Context, anonymousID, targetID string) (*dto.MergeResultDTO, error)
}

type userServiceImpl struct {
	userRepo         repository.UserRepo
	contributionRepo repository.ContributionRepo
	ledger           repository.LedgerRepo
}

func NewUserService(
	userRepo repository.UserRepo,
	contributionRepo repository.ContributionRepo,
	ledger repository.LedgerRepo,
) UserService {
	return &userServiceImpl{
		userRepo:         userRepo,
		contributionRepo: contributionRepo,
		ledger:           ledger,
	}
}

func (s *userServiceImpl) CreateAnonymous(ctx context.Context, req *dto.AnonymousCreateReq) (*model.User, error) {
	now := time.Now()
	username := fmt.Sprintf("guest_%d", now.UnixMilli())

	user := &model.User{
		ID:                    uuid.NewString(),
		Username:              &username,
		IsAnonymous:           true,
		ChaosCoins:            consts.StartingChaosCoins,
		LastContributionReset: now,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if req.CountryCode != "" {
		user.CountryCode = req.CountryCode
	}
	if req.Locale != "" {
		user.Locale = req.Locale
	}
	if req.Currency != "" {
		user.Currency = req.Currency
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "anonymous profile created", "user_id", user.ID, "country", user.CountryCode)
	return user, nil
}

func (s *userServiceImpl) Register(ctx context.Context, userID string, req *dto.RegisterReq) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != userID {
		return nil, ErrUsernameTaken
	}

	if err := s.userRepo.PromoteToRegistered(ctx, userID, req.Username, req.Email); err != nil {
		return nil, err
	}

	return s.userRepo.GetUserById(ctx, userID)
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userServiceImpl) MergeProfiles(ctx context.Context, anonymousID, targetID string) (*dto.MergeResultDTO, error) {
	if anonymousID == targetID {
		return nil, ErrMergeInvalid
	}

	anon, err := s.userRepo.GetUserById(ctx, anonymousID)
	if err != nil || anon == nil {
		return nil, ErrUserNotFound
	}
	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil || target == nil {
		return nil, ErrUserNotFound
	}

	// 只允许匿名档案向注册账号单向合并
	if !anon.IsAnonymous || target.IsAnonymous {
		return nil, ErrMergeInvalid
	}

	result := &dto.MergeResultDTO{}

	err = s.ledger.InTx(ctx, func(tx repository.LedgerRepo) error {
		coins, err := tx.GetBalance(ctx, anonymousID)
		if err != nil {
			return err
		}

		if coins > 0 {
			ok, err := tx.DebitBalance(ctx, anonymousID, coins)
			if err != nil {
				return err
			}
			if !ok {
				return ErrMergeInvalid
			}
			if _, err := tx.AddBalance(ctx, targetID, coins); err != nil {
				return err
			}

			mergeTxn := &model.Transaction{
				ID:          uuid.NewString(),
				UserID:      targetID,
				Type:        model.TxTypePayout,
				Amount:      coins,
				Description: "coins transferred from anonymous profile",
				CreatedAt:   time.Now(),
			}
			if err := tx.RecordTransaction(ctx, mergeTxn); err != nil {
				return err
			}
		}
		result.TransferredCoins = coins
		return nil
	})
	if err != nil {
		return nil, err
	}

	moved, err := s.contributionRepo.TransferOwnership(ctx, anonymousID, targetID)
	if err != nil {
		return nil, err
	}
	result.TransferredContributions = moved

	if err := s.userRepo.LinkMergedFrom(ctx, targetID, anonymousID); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "profiles merged",
		"anonymous_id", anonymousID, "target_id", targetID,
		"coins", result.TransferredCoins, "contributions", moved)

	return result, nil
}
