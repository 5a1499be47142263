package dto

import "github.com/KOVY310/chaos-canvas/internal/model"

type ContributionCreateReq struct {
	LayerID     string            `json:"layerId" binding:"required"`
	ContentType string            `json:"contentType" binding:"required,contenttype"`
	ContentData model.ContentData `json:"contentData" binding:"required"`
	PositionX   float64           `json:"positionX"`
	PositionY   float64           `json:"positionY"`
	Width       int               `json:"width" binding:"required,gt=0"`
	Height      int               `json:"height" binding:"required,gt=0"`
}

type ViewCountDTO struct {
	ContributionID string `json:"contributionId"`
	ViewCount      int64  `json:"viewCount"`
}
