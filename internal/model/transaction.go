package model

import (
	"time"
)

// 交易类型
const (
	TxTypePurchase   = "purchase"
	TxTypeBoost      = "boost"
	TxTypeEarned     = "earned"
	TxTypeInvestment = "investment"
	TxTypePayout     = "payout"
)

// Transaction 账本流水，只追加，任何余额变更都必须留下一条对应记录
type Transaction struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(36);not null;index:idx_user_id" json:"userId"`
	Type           string    `gorm:"type:varchar(16);not null;index:idx_type" json:"type"`
	Amount         int64     `gorm:"not null" json:"amount"` // 带符号，支出为负
	ContributionID *string   `gorm:"type:varchar(36)" json:"contributionId,omitempty"`
	Description    string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
