package model

import (
	"time"
)

// 内容类型
const (
	ContentTypeImage = "image"
	ContentTypeText  = "text"
	ContentTypeVideo = "video"
	ContentTypeAudio = "audio"
)

// ContentData 内容描述，按 ContentType 区分必填字段
type ContentData struct {
	URL    string `json:"url,omitempty"`
	Prompt string `json:"prompt,omitempty"`
	Style  string `json:"style,omitempty"`
	Text   string `json:"text,omitempty"`
}

type Contribution struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      string      `gorm:"type:varchar(36);not null;index:idx_user_id" json:"userId"`
	LayerID     string      `gorm:"type:varchar(36);not null;index:idx_layer_id" json:"layerId"`
	ContentType string      `gorm:"type:varchar(16);not null" json:"contentType"`
	ContentData ContentData `gorm:"type:json;serializer:json" json:"contentData"`
	PositionX   float64     `gorm:"type:decimal(10,2);not null" json:"positionX"`
	PositionY   float64     `gorm:"type:decimal(10,2);not null" json:"positionY"`
	Width       int         `gorm:"not null" json:"width"`
	Height      int         `gorm:"not null" json:"height"`

	// BoostCount 与 MarketPrice 只由助推引擎修改，单调不减
	BoostCount  int     `gorm:"not null;default:0" json:"boostCount"`
	ViewCount   int64   `gorm:"not null;default:0" json:"viewCount"`
	MarketPrice float64 `gorm:"type:decimal(10,2);not null;default:10;index:idx_market_price" json:"marketPrice"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Contribution) TableName() string {
	return "contributions"
}
