package dto

import "github.com/KOVY310/chaos-canvas/internal/model"

// WS 事件类型
const (
	WsTypeJoinLayer           = "join_layer"
	WsTypeJoined              = "joined"
	WsTypeNewContribution     = "new_contribution"
	WsTypeContributionUpdated = "contribution_updated"
)

// JoinLayerReq 客户端入场消息，一个连接同一时刻只观察一个图层
type JoinLayerReq struct {
	Type    string `json:"type"`
	LayerID string `json:"layerId"`
}

type JoinedEvent struct {
	Type     string `json:"type"`
	LayerID  string `json:"layerId"`
	Watchers int    `json:"watchers"`
}

type NewContributionEvent struct {
	Type         string              `json:"type"`
	Contribution *model.Contribution `json:"contribution"`
}

type ContributionUpdatedEvent struct {
	Type           string  `json:"type"`
	ContributionID string  `json:"contributionId"`
	BoostCount     int     `json:"boostCount"`
	MarketPrice    float64 `json:"marketPrice"`
}
