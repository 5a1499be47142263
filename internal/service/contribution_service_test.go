package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/pkg/notifier"
	"github.com/KOVY310/chaos-canvas/internal/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contributionEnv struct {
	store   *memStore
	hub     *notifier.Hub
	limiter *ratelimit.Limiter
	svc     *contributionServiceImpl
	clock   time.Time
}

func newContributionEnv() *contributionEnv {
	store := newMemStore()
	hub := notifier.NewHub()
	limiter := ratelimit.New()

	env := &contributionEnv{
		store:   store,
		hub:     hub,
		limiter: limiter,
		clock:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	env.svc = NewContributionService(store, store, store, limiter, hub).(*contributionServiceImpl)
	env.svc.now = func() time.Time { return env.clock }

	store.users["u1"] = &model.User{
		ID:                    "u1",
		ChaosCoins:            100,
		CountryCode:           "CZ",
		LastContributionReset: env.clock,
	}
	store.layers["layer-1"] = &model.CanvasLayer{
		ID:         "layer-1",
		LayerType:  model.LayerTypeGlobal,
		RegionCode: "global",
		Name:       "Global Canvas",
	}
	return env
}

func imageReq() *dto.ContributionCreateReq {
	return &dto.ContributionCreateReq{
		LayerID:     "layer-1",
		ContentType: model.ContentTypeImage,
		ContentData: model.ContentData{URL: "https://img.example/cat.png", Prompt: "a cat"},
		PositionX:   10,
		PositionY:   20,
		Width:       256,
		Height:      256,
	}
}

func TestCreateContributionDefaults(t *testing.T) {
	env := newContributionEnv()

	contribution, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", imageReq())
	require.NoError(t, err)

	assert.NotEmpty(t, contribution.ID)
	assert.Equal(t, "u1", contribution.UserID)
	assert.Equal(t, "layer-1", contribution.LayerID)
	assert.Equal(t, 0, contribution.BoostCount)
	assert.Equal(t, int64(0), contribution.ViewCount)
	assert.Equal(t, consts.DefaultMarketPrice, contribution.MarketPrice)
	assert.Equal(t, 1, env.store.users["u1"].DailyContributionCount)
}

func TestCreateContributionPublishesEvent(t *testing.T) {
	env := newContributionEnv()

	sink := &captureSink{}
	env.hub.Join(sink, "layer-1")

	_, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", imageReq())
	require.NoError(t, err)

	require.Len(t, sink.payloads, 1)
	assert.Contains(t, string(sink.payloads[0]), `"new_contribution"`)
}

func TestCreateContributionContentValidation(t *testing.T) {
	env := newContributionEnv()

	cases := []struct {
		name        string
		contentType string
		data        model.ContentData
	}{
		{"image without url", model.ContentTypeImage, model.ContentData{Prompt: "a cat"}},
		{"video without url", model.ContentTypeVideo, model.ContentData{}},
		{"text without text", model.ContentTypeText, model.ContentData{URL: "https://img.example/x.png"}},
		{"unknown type", "hologram", model.ContentData{URL: "https://img.example/x.png"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := imageReq()
			req.ContentType = tc.contentType
			req.ContentData = tc.data

			_, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", req)
			assert.ErrorIs(t, err, ErrContentInvalid)
		})
	}

	// 校验失败不消耗当日配额
	assert.Equal(t, 0, env.store.users["u1"].DailyContributionCount)
}

func TestCreateContributionTextOK(t *testing.T) {
	env := newContributionEnv()

	req := imageReq()
	req.ContentType = model.ContentTypeText
	req.ContentData = model.ContentData{Text: "hello chaos"}

	contribution, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", req)
	require.NoError(t, err)
	assert.Equal(t, model.ContentTypeText, contribution.ContentType)
}

func TestCreateContributionUnknownLayer(t *testing.T) {
	env := newContributionEnv()

	req := imageReq()
	req.LayerID = "missing"

	_, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", req)
	assert.ErrorIs(t, err, ErrLayerNotFound)
}

func TestDailyLimitResetsNextDay(t *testing.T) {
	env := newContributionEnv()
	env.store.users["u1"].DailyContributionCount = consts.DailyContributionLimit

	_, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", imageReq())
	assert.ErrorIs(t, err, ErrDailyLimitReached)

	// 跨过自然日后配额重置
	env.clock = env.clock.Add(24 * time.Hour)

	contribution, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", imageReq())
	require.NoError(t, err)
	assert.NotEmpty(t, contribution.ID)
	assert.Equal(t, 1, env.store.users["u1"].DailyContributionCount)
}

func TestCreateContributionRateLimited(t *testing.T) {
	env := newContributionEnv()

	// 占满该 用户:IP 的滑动窗口
	for i := 0; i < consts.CreateWindowMax; i++ {
		require.True(t, env.limiter.Allow("u1:1.2.3.4", consts.CreateWindowMax, consts.CreateWindow))
	}

	_, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", imageReq())
	assert.ErrorIs(t, err, ErrRateLimited)

	// 换一个 IP 不受影响
	_, err = env.svc.CreateContribution(context.Background(), "u1", "5.6.7.8", imageReq())
	assert.NoError(t, err)
}

func TestGetUserContributions(t *testing.T) {
	env := newContributionEnv()

	for i := 0; i < 3; i++ {
		req := imageReq()
		req.ContentData.URL = fmt.Sprintf("https://img.example/%d.png", i)
		_, err := env.svc.CreateContribution(context.Background(), "u1", "1.2.3.4", req)
		require.NoError(t, err)
	}

	contributions, err := env.svc.GetUserContributions(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, contributions, 3)

	_, err = env.svc.GetUserContributions(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
