package model

import (
	"time"
)

type User struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username    *string `gorm:"type:varchar(50);uniqueIndex:idx_username" json:"username,omitempty"`
	Email       *string `gorm:"type:varchar(255);index:idx_email" json:"email,omitempty"`
	IsAnonymous bool    `gorm:"type:tinyint(1);not null;default:1" json:"isAnonymous"`
	CountryCode string  `gorm:"type:varchar(8);not null;default:'US'" json:"countryCode"`
	Locale      string  `gorm:"type:varchar(16);not null;default:'en-US'" json:"locale"`
	Currency    string  `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`

	// ChaosCoins 余额只允许通过账本操作变更，禁止直接写入客户端传来的值
	ChaosCoins  int64 `gorm:"not null;default:100" json:"chaosCoins"`
	TotalEarned int64 `gorm:"not null;default:0" json:"totalEarned"`

	DailyContributionCount int       `gorm:"not null;default:0" json:"dailyContributionCount"`
	LastContributionReset  time.Time `gorm:"not null" json:"lastContributionReset"`

	// MergedFromAnonymous 记录该匿名账号合并到的注册账号
	MergedFromAnonymous *string `gorm:"type:varchar(36)" json:"mergedFromAnonymous,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
