package service

import (
	"context"
	log "log/slog"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

type BubbleService interface {
	// CreateBubble 创建私人泡泡，默认私密、邀请名单为空
	CreateBubble(ctx context.Context, ownerID string, req *dto.BubbleCreateReq) (*model.ChaosBubble, error)
	GetBubble(ctx context.Context, id string) (*model.ChaosBubble, error)
	GetUserBubbles(ctx context.Context, ownerID string) ([]*model.ChaosBubble, error)
}

type bubbleServiceImpl struct {
	bubbleRepo repository.BubbleRepo
	userRepo   repository.UserRepo
	layerRepo  repository.LayerRepo
}

func NewBubbleService(
	bubbleRepo repository.BubbleRepo,
	userRepo repository.UserRepo,
	layerRepo repository.LayerRepo,
) BubbleService {
	return &bubbleServiceImpl{
		bubbleRepo: bubbleRepo,
		userRepo:   userRepo,
		layerRepo:  layerRepo,
	}
}

func (s *bubbleServiceImpl) CreateBubble(ctx context.Context, ownerID string, req *dto.BubbleCreateReq) (*model.ChaosBubble, error) {
	owner, err := s.userRepo.GetUserById(ctx, ownerID)
	if err != nil || owner == nil {
		return nil, ErrUserNotFound
	}

	bubble := &model.ChaosBubble{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Name:           req.Name,
		IsPrivate:      true,
		InvitedUserIDs: make([]string, 0),
		ThemeData:      req.ThemeData,
		CreatedAt:      time.Now(),
	}
	if req.IsPrivate != nil {
		bubble.IsPrivate = *req.IsPrivate
	}
	if len(req.InvitedUserIDs) > 0 {
		bubble.InvitedUserIDs = req.InvitedUserIDs
	}
	if req.LayerID != "" {
		layer, err := s.layerRepo.GetLayer(ctx, req.LayerID)
		if err != nil || layer == nil {
			return nil, ErrLayerNotFound
		}
		bubble.LayerID = &layer.ID
	}

	if err := s.bubbleRepo.CreateBubble(ctx, bubble); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "chaos bubble created",
		"bubble_id", bubble.ID, "owner_id", ownerID, "private", bubble.IsPrivate)

	return bubble, nil
}

func (s *bubbleServiceImpl) GetBubble(ctx context.Context, id string) (*model.ChaosBubble, error) {
	bubble, err := s.bubbleRepo.GetBubble(ctx, id)
	if err != nil {
		return nil, err
	}
	if bubble == nil {
		return nil, ErrBubbleNotFound
	}
	return bubble, nil
}

func (s *bubbleServiceImpl) GetUserBubbles(ctx context.Context, ownerID string) ([]*model.ChaosBubble, error) {
	owner, err := s.userRepo.GetUserById(ctx, ownerID)
	if err != nil || owner == nil {
		return nil, ErrUserNotFound
	}
	return s.bubbleRepo.GetBubblesByOwner(ctx, ownerID)
}
