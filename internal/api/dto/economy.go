package dto

type BoostReq struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// BoostResultDTO 助推完成后的贡献快照与账本结果
type BoostResultDTO struct {
	ContributionID string  `json:"contributionId"`
	BoostCount     int     `json:"boostCount"`
	MarketPrice    float64 `json:"marketPrice"`
	AuthorShare    int64   `json:"authorShare"`
	Balance        int64   `json:"balance"`
}

type InvestReq struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type PurchaseReq struct {
	PackageID string `json:"packageId" binding:"required"`
}

type PurchaseResultDTO struct {
	Credited int64 `json:"credited"`
	Balance  int64 `json:"balance"`
}

type BalanceDTO struct {
	ChaosCoins  int64 `json:"chaosCoins"`
	TotalEarned int64 `json:"totalEarned"`
}
