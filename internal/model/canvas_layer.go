package model

import (
	"time"
)

// 画布层级类型
const (
	LayerTypeGlobal    = "global"
	LayerTypeContinent = "continent"
	LayerTypeCountry   = "country"
	LayerTypeCity      = "city"
	LayerTypePersonal  = "personal"
)

type CanvasLayer struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	LayerType  string    `gorm:"type:varchar(16);not null;index:idx_layer_type" json:"layerType"`
	RegionCode string    `gorm:"type:varchar(64);not null;index:idx_region" json:"regionCode"` // 'global', 'EU', 'CZ', 'prague', 个人层为用户ID
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	ZoomLevel  int       `gorm:"not null" json:"zoomLevel"` // 0=global ... 4=personal
	SeedPrompt *string   `gorm:"type:varchar(255)" json:"seedPrompt,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (CanvasLayer) TableName() string {
	return "canvas_layers"
}
