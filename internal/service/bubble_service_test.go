package service

import (
	"context"
	"testing"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBubbleEnv() (*memStore, BubbleService) {
	store := newMemStore()
	store.users["u1"] = &model.User{ID: "u1", ChaosCoins: 100, LastContributionReset: time.Now()}
	return store, NewBubbleService(store, store, store)
}

func TestCreateBubbleDefaults(t *testing.T) {
	store, svc := newBubbleEnv()

	bubble, err := svc.CreateBubble(context.Background(), "u1", &dto.BubbleCreateReq{Name: "my corner"})
	require.NoError(t, err)

	assert.NotEmpty(t, bubble.ID)
	assert.Equal(t, "u1", bubble.OwnerID)
	// 缺省私密，邀请名单为空数组而非 nil
	assert.True(t, bubble.IsPrivate)
	assert.NotNil(t, bubble.InvitedUserIDs)
	assert.Empty(t, bubble.InvitedUserIDs)
	assert.Nil(t, bubble.LayerID)
	assert.Same(t, bubble, store.bubbles[bubble.ID])
}

func TestCreateBubblePublicWithInvites(t *testing.T) {
	_, svc := newBubbleEnv()

	public := false
	bubble, err := svc.CreateBubble(context.Background(), "u1", &dto.BubbleCreateReq{
		Name:           "open house",
		IsPrivate:      &public,
		InvitedUserIDs: []string{"u2", "u3"},
	})
	require.NoError(t, err)

	assert.False(t, bubble.IsPrivate)
	assert.Equal(t, []string{"u2", "u3"}, bubble.InvitedUserIDs)
}

func TestCreateBubbleLayerValidation(t *testing.T) {
	store, svc := newBubbleEnv()
	store.layers["layer-1"] = &model.CanvasLayer{ID: "layer-1", LayerType: model.LayerTypePersonal, RegionCode: "u1"}

	bubble, err := svc.CreateBubble(context.Background(), "u1", &dto.BubbleCreateReq{Name: "ok", LayerID: "layer-1"})
	require.NoError(t, err)
	require.NotNil(t, bubble.LayerID)
	assert.Equal(t, "layer-1", *bubble.LayerID)

	_, err = svc.CreateBubble(context.Background(), "u1", &dto.BubbleCreateReq{Name: "bad", LayerID: "missing"})
	assert.ErrorIs(t, err, ErrLayerNotFound)
}

func TestCreateBubbleOwnerMissing(t *testing.T) {
	_, svc := newBubbleEnv()

	_, err := svc.CreateBubble(context.Background(), "nobody", &dto.BubbleCreateReq{Name: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetBubbleNotFound(t *testing.T) {
	_, svc := newBubbleEnv()

	_, err := svc.GetBubble(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBubbleNotFound)
}

func TestGetUserBubblesNewestFirst(t *testing.T) {
	store, svc := newBubbleEnv()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store.bubbles["b1"] = &model.ChaosBubble{ID: "b1", OwnerID: "u1", Name: "old", CreatedAt: base}
	store.bubbles["b2"] = &model.ChaosBubble{ID: "b2", OwnerID: "u1", Name: "new", CreatedAt: base.Add(time.Hour)}
	store.bubbles["b3"] = &model.ChaosBubble{ID: "b3", OwnerID: "other", Name: "theirs", CreatedAt: base}

	bubbles, err := svc.GetUserBubbles(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, bubbles, 2)
	assert.Equal(t, "b2", bubbles[0].ID)
	assert.Equal(t, "b1", bubbles[1].ID)

	_, err = svc.GetUserBubbles(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
