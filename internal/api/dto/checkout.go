package dto

type CheckoutReq struct {
	PackageID string `json:"packageId" binding:"required"`
}

type CheckoutSessionDTO struct {
	SessionID  string `json:"sessionId"`
	SessionURL string `json:"sessionUrl"`
}
