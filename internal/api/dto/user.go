package dto

// AnonymousCreateReq 匿名访客档案创建请求，全部字段可缺省
type AnonymousCreateReq struct {
	CountryCode string `json:"countryCode"`
	Locale      string `json:"locale"`
	Currency    string `json:"currency"`
}

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type MergeReq struct {
	AnonymousID string `json:"anonUserId" binding:"required"`
	TargetID    string `json:"registeredUserId" binding:"required"`
}

// UserDTO 对外暴露的用户档案视图，邮箱等敏感字段不出网
type UserDTO struct {
	ID                     string  `json:"id"`
	Username               *string `json:"username,omitempty"`
	IsAnonymous            bool    `json:"isAnonymous"`
	CountryCode            string  `json:"countryCode"`
	Locale                 string  `json:"locale"`
	Currency               string  `json:"currency"`
	ChaosCoins             int64   `json:"chaosCoins"`
	TotalEarned            int64   `json:"totalEarned"`
	DailyContributionCount int     `json:"dailyContributionCount"`
	CreatedAt              string  `json:"createdAt"`
}

type MergeResultDTO struct {
	TransferredCoins         int64 `json:"transferredCoins"`
	TransferredContributions int64 `json:"transferredContributions"`
}
