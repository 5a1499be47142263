package model

import (
	"time"
)

type Investment struct {
	ID             string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string `gorm:"type:varchar(36);not null;index:idx_user_id" json:"userId"`
	ContributionID string `gorm:"type:varchar(36);not null;index:idx_contribution_id" json:"contributionId"`
	Amount         int64  `gorm:"not null" json:"amount"`

	// PurchasePrice 为投资时刻的市场价快照；CurrentValue 由定时任务重估，不在投资时同步计算
	PurchasePrice float64 `gorm:"type:decimal(10,2);not null" json:"purchasePrice"`
	CurrentValue  float64 `gorm:"type:decimal(10,2);not null" json:"currentValue"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Investment) TableName() string {
	return "investments"
}
