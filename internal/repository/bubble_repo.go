package repository

import (
	"context"
	"errors"

	"github.com/KOVY310/chaos-canvas/internal/model"

	"gorm.io/gorm"
)

type BubbleRepo interface {
	GetBubble(ctx context.Context, id string) (*model.ChaosBubble, error)
	GetBubblesByOwner(ctx context.Context, ownerID string) ([]*model.ChaosBubble, error)
	CreateBubble(ctx context.Context, bubble *model.ChaosBubble) error
}

type BubbleRepoImpl struct {
	db *gorm.DB
}

func NewBubbleRepo(db *gorm.DB) BubbleRepo {
	return &BubbleRepoImpl{db: db}
}

func (s *BubbleRepoImpl) GetBubble(ctx context.Context, id string) (*model.ChaosBubble, error) {
	bubble := &model.ChaosBubble{}
	result := s.db.WithContext(ctx).First(bubble, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return bubble, nil
}

func (s *BubbleRepoImpl) GetBubblesByOwner(ctx context.Context, ownerID string) ([]*model.ChaosBubble, error) {
	bubbles := make([]*model.ChaosBubble, 0)
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&bubbles)
	if result.Error != nil {
		return nil, result.Error
	}
	return bubbles, nil
}

func (s *BubbleRepoImpl) CreateBubble(ctx context.Context, bubble *model.ChaosBubble) error {
	if result := s.db.WithContext(ctx).Create(bubble); result.Error != nil {
		return result.Error
	}
	return nil
}
