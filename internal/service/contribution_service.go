package service

import (
	"context"
	log "log/slog"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/pkg/notifier"
	"github.com/KOVY310/chaos-canvas/internal/pkg/ratelimit"
	"github.com/KOVY310/chaos-canvas/internal/pkg/redis"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

type ContributionService interface {
	CreateContribution(ctx context.Context, userID, ip string, req *dto.ContributionCreateReq) (*model.Contribution, error)
	GetContribution(ctx context.Context, id string) (*model.Contribution, error)
	GetLayerContributions(ctx context.Context, layerID string) ([]*model.Contribution, error)
	GetUserContributions(ctx context.Context, userID string) ([]*model.Contribution, error)
	// TrackView 浏览计数先入 Redis 缓冲，由定时任务回写数据库
	TrackView(ctx context.Context, contributionID string) (*dto.ViewCountDTO, error)
}

type contributionServiceImpl struct {
	contributionRepo repository.ContributionRepo
	userRepo         repository.UserRepo
	layerRepo        repository.LayerRepo
	limiter          *ratelimit.Limiter
	hub              *notifier.Hub

	// now 可注入时钟，便于测试跨天重置
	now func() time.Time
}

func NewContributionService(
	contributionRepo repository.ContributionRepo,
	userRepo repository.UserRepo,
	layerRepo repository.LayerRepo,
	limiter *ratelimit.Limiter,
	hub *notifier.Hub,
) ContributionService {
	return &contributionServiceImpl{
		contributionRepo: contributionRepo,
		userRepo:         userRepo,
		layerRepo:        layerRepo,
		limiter:          limiter,
		hub:              hub,
		now:              time.Now,
	}
}

func (s *contributionServiceImpl) CreateContribution(ctx context.Context, userID, ip string, req *dto.ContributionCreateReq) (*model.Contribution, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	if !s.limiter.Allow(userID+":"+ip, consts.CreateWindowMax, consts.CreateWindow) {
		return nil, ErrRateLimited
	}

	now := s.now()
	if !sameDay(user.LastContributionReset, now) {
		if err := s.userRepo.ResetDailyCount(ctx, userID, now); err != nil {
			return nil, err
		}
		user.DailyContributionCount = 0
	}
	if user.DailyContributionCount >= consts.DailyContributionLimit {
		return nil, ErrDailyLimitReached
	}

	layer, err := s.layerRepo.GetLayer(ctx, req.LayerID)
	if err != nil || layer == nil {
		return nil, ErrLayerNotFound
	}

	if err := validateContent(req.ContentType, &req.ContentData); err != nil {
		return nil, err
	}

	// 计数在全部校验通过后才消耗，校验失败不占当日配额
	if err := s.userRepo.IncrementDailyCount(ctx, userID); err != nil {
		return nil, err
	}

	contribution := &model.Contribution{
		ID:          uuid.NewString(),
		UserID:      userID,
		LayerID:     layer.ID,
		ContentType: req.ContentType,
		ContentData: req.ContentData,
		PositionX:   req.PositionX,
		PositionY:   req.PositionY,
		Width:       req.Width,
		Height:      req.Height,
		BoostCount:  0,
		ViewCount:   0,
		MarketPrice: consts.DefaultMarketPrice,
		CreatedAt:   now,
	}
	if err := s.contributionRepo.CreateContribution(ctx, contribution); err != nil {
		return nil, err
	}

	s.hub.Publish(layer.ID, &dto.NewContributionEvent{
		Type:         dto.WsTypeNewContribution,
		Contribution: contribution,
	})

	log.InfoContext(ctx, "contribution created",
		"contribution_id", contribution.ID, "user_id", userID, "layer_id", layer.ID,
		"content_type", req.ContentType)

	return contribution, nil
}

func (s *contributionServiceImpl) GetContribution(ctx context.Context, id string) (*model.Contribution, error) {
	contribution, err := s.contributionRepo.GetContribution(ctx, id)
	if err != nil {
		return nil, err
	}
	if contribution == nil {
		return nil, ErrContributionNotFound
	}
	contribution.ViewCount += s.pendingViews(ctx, id)
	return contribution, nil
}

func (s *contributionServiceImpl) GetLayerContributions(ctx context.Context, layerID string) ([]*model.Contribution, error) {
	layer, err := s.layerRepo.GetLayer(ctx, layerID)
	if err != nil || layer == nil {
		return nil, ErrLayerNotFound
	}
	contributions, err := s.contributionRepo.GetContributionsByLayer(ctx, layerID)
	if err != nil {
		return nil, err
	}
	for _, c := range contributions {
		c.ViewCount += s.pendingViews(ctx, c.ID)
	}
	return contributions, nil
}

func (s *contributionServiceImpl) GetUserContributions(ctx context.Context, userID string) ([]*model.Contribution, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	return s.contributionRepo.GetContributionsByUser(ctx, userID)
}

func (s *contributionServiceImpl) TrackView(ctx context.Context, contributionID string) (*dto.ViewCountDTO, error) {
	contribution, err := s.contributionRepo.GetContribution(ctx, contributionID)
	if err != nil {
		return nil, err
	}
	if contribution == nil {
		return nil, ErrContributionNotFound
	}

	delta, err := redis.IncrBy(ctx, consts.ContributionViewKey+contributionID, 1)
	if err != nil {
		// Redis 不可用时浏览数丢弃，不阻塞读路径
		log.WarnContext(ctx, "buffer view count failed", "contribution_id", contributionID, "err", err)
		return &dto.ViewCountDTO{ContributionID: contributionID, ViewCount: contribution.ViewCount}, nil
	}
	_ = redis.SAdd(ctx, consts.ContributionViewDirtyKey, contributionID)

	return &dto.ViewCountDTO{
		ContributionID: contributionID,
		ViewCount:      contribution.ViewCount + delta,
	}, nil
}

// pendingViews 读取尚未回写数据库的浏览增量
func (s *contributionServiceImpl) pendingViews(ctx context.Context, contributionID string) int64 {
	delta, err := redis.GetInt64(ctx, consts.ContributionViewKey+contributionID)
	if err != nil {
		return 0
	}
	return delta
}

// validateContent 校验内容描述与声明类型一致
func validateContent(contentType string, data *model.ContentData) error {
	switch contentType {
	case model.ContentTypeImage, model.ContentTypeVideo, model.ContentTypeAudio:
		if data.URL == "" {
			return ErrContentInvalid
		}
	case model.ContentTypeText:
		if data.Text == "" {
			return ErrContentInvalid
		}
	default:
		return ErrContentInvalid
	}
	return nil
}

// sameDay 按服务器本地时区判断两个时间是否同一自然日
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
