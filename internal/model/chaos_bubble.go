package model

import (
	"time"
)

// ChaosBubble 私人泡泡：用户自建的小圈子画布，可邀请好友共创
type ChaosBubble struct {
	ID             string                 `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID        string                 `gorm:"type:varchar(36);not null;index:idx_owner_id" json:"ownerId"`
	Name           string                 `gorm:"type:varchar(255);not null" json:"name"`
	IsPrivate      bool                   `gorm:"type:tinyint(1);not null;default:1" json:"isPrivate"`
	InvitedUserIDs []string               `gorm:"type:json;serializer:json" json:"invitedUserIds"`
	ThemeData      map[string]interface{} `gorm:"type:json;serializer:json" json:"themeData,omitempty"`
	LayerID        *string                `gorm:"type:varchar(36)" json:"layerId,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

func (ChaosBubble) TableName() string {
	return "chaos_bubbles"
}
