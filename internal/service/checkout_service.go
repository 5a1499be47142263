package service

import (
	"context"
	log "log/slog"

	"github.com/KOVY310/chaos-canvas/internal/api/config"
	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type CheckoutService interface {
	// CreateSession 在支付渠道创建结账会话，实际入账由 purchase 回调完成
	CreateSession(ctx context.Context, userID, packageID string) (*dto.CheckoutSessionDTO, error)
}

type checkoutServiceImpl struct {
	client   *resty.Client
	cfg      *config.PaymentConfig
	userRepo repository.UserRepo
}

type checkoutSessionResp struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func NewCheckoutService(cfg *config.PaymentConfig, userRepo repository.UserRepo) CheckoutService {
	return &checkoutServiceImpl{
		client:   resty.New(),
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, userID, packageID string) (*dto.CheckoutSessionDTO, error) {
	coins, ok := consts.CoinPackages[packageID]
	if !ok {
		return nil, ErrPackageInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	// 未配置支付渠道时返回本地会话，开发环境走 purchase 直充
	if s.cfg.BaseURL == "" {
		sessionID := "local_" + uuid.NewString()
		return &dto.CheckoutSessionDTO{
			SessionID:  sessionID,
			SessionURL: s.cfg.SuccessURL,
		}, nil
	}

	var session checkoutSessionResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.SecretKey).
		SetBody(map[string]interface{}{
			"amount":      coins,
			"currency":    user.Currency,
			"success_url": s.cfg.SuccessURL,
			"cancel_url":  s.cfg.CancelURL,
			"metadata": map[string]string{
				"user_id":    userID,
				"package_id": packageID,
			},
		}).
		SetResult(&session).
		Post(s.cfg.BaseURL + "/v1/checkout/sessions")
	if err != nil {
		log.ErrorContext(ctx, "checkout session request failed", "user_id", userID, "err", err)
		return nil, ErrCheckoutFailed
	}
	if resp.IsError() || session.ID == "" {
		log.ErrorContext(ctx, "checkout session rejected", "user_id", userID, "status", resp.StatusCode())
		return nil, ErrCheckoutFailed
	}

	return &dto.CheckoutSessionDTO{
		SessionID:  session.ID,
		SessionURL: session.URL,
	}, nil
}
