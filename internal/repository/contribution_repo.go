package repository

import (
	"context"
	"errors"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/model"

	"gorm.io/gorm"
)

// CountryStat 按国家聚合的创作与助推计数，供排行榜任务使用
type CountryStat struct {
	CountryCode   string
	Contributions int64
	Boosts        int64
}

type ContributionRepo interface {
	GetContribution(ctx context.Context, id string) (*model.Contribution, error)
	GetContributionsByLayer(ctx context.Context, layerID string) ([]*model.Contribution, error)
	GetContributionsByUser(ctx context.Context, userID string) ([]*model.Contribution, error)
	CreateContribution(ctx context.Context, contribution *model.Contribution) error
	SetViewCount(ctx context.Context, id string, count int64) error
	// TransferOwnership 匿名档案合并时把贡献转给注册账号
	TransferOwnership(ctx context.Context, fromUserID, toUserID string) (int64, error)
	// DeleteOlderThan 保留期清理，返回删除行数
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	AggregateCountryStats(ctx context.Context) ([]*CountryStat, error)
}

type contributionRepoImpl struct {
	db *gorm.DB
}

func NewContributionRepo(db *gorm.DB) ContributionRepo {
	return &contributionRepoImpl{db: db}
}

func (s *contributionRepoImpl) GetContribution(ctx context.Context, id string) (*model.Contribution, error) {
	contribution := &model.Contribution{}
	result := s.db.WithContext(ctx).First(contribution, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return contribution, nil
}

func (s *contributionRepoImpl) GetContributionsByLayer(ctx context.Context, layerID string) ([]*model.Contribution, error) {
	contributions := make([]*model.Contribution, 0)
	result := s.db.WithContext(ctx).
		Where("layer_id = ?", layerID).
		Order("created_at DESC").
		Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}
	return contributions, nil
}

func (s *contributionRepoImpl) GetContributionsByUser(ctx context.Context, userID string) ([]*model.Contribution, error) {
	contributions := make([]*model.Contribution, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contributions)
	if result.Error != nil {
		return nil, result.Error
	}
	return contributions, nil
}

func (s *contributionRepoImpl) CreateContribution(ctx context.Context, contribution *model.Contribution) error {
	if result := s.db.WithContext(ctx).Create(contribution); result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *contributionRepoImpl) SetViewCount(ctx context.Context, id string, count int64) error {
	result := s.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Where("id = ?", id).
		Update("view_count", count)
	return result.Error
}

func (s *contributionRepoImpl) TransferOwnership(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Where("user_id = ?", fromUserID).
		Update("user_id", toUserID)
	return result.RowsAffected, result.Error
}

func (s *contributionRepoImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Contribution{})
	return result.RowsAffected, result.Error
}

func (s *contributionRepoImpl) AggregateCountryStats(ctx context.Context) ([]*CountryStat, error) {
	stats := make([]*CountryStat, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Contribution{}).
		Select("users.country_code AS country_code, COUNT(contributions.id) AS contributions, COALESCE(SUM(contributions.boost_count), 0) AS boosts").
		Joins("JOIN users ON users.id = contributions.user_id").
		Group("users.country_code").
		Scan(&stats)
	if result.Error != nil {
		return nil, result.Error
	}
	return stats, nil
}
