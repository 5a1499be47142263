package repository

import (
	"context"
	"errors"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/model"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	// ResetDailyCount 跨天后清零当日计数并推进重置时间戳
	ResetDailyCount(ctx context.Context, id string, resetAt time.Time) error
	IncrementDailyCount(ctx context.Context, id string) error
	// PromoteToRegistered 匿名账号转正式账号，map 更新保证 is_anonymous=false 能落库
	PromoteToRegistered(ctx context.Context, id, username, email string) error
	// LinkMergedFrom 只写合并来源字段，避免整行回写覆盖事务里刚划转的余额
	LinkMergedFrom(ctx context.Context, id, anonymousID string) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	if result := s.db.WithContext(ctx).Create(user); result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *UserRepoImpl) ResetDailyCount(ctx context.Context, id string, resetAt time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"daily_contribution_count": 0,
			"last_contribution_reset":  resetAt,
		})
	return result.Error
}

func (s *UserRepoImpl) IncrementDailyCount(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("daily_contribution_count", gorm.Expr("daily_contribution_count + 1"))
	return result.Error
}

func (s *UserRepoImpl) LinkMergedFrom(ctx context.Context, id, anonymousID string) error {
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("merged_from_anonymous", anonymousID)
	return result.Error
}

func (s *UserRepoImpl) PromoteToRegistered(ctx context.Context, id, username, email string) error {
	updates := map[string]interface{}{
		"username":     username,
		"is_anonymous": false,
	}
	if email != "" {
		updates["email"] = email
	}
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates)
	return result.Error
}
