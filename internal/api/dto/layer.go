package dto

type LayerCreateReq struct {
	LayerType  string `json:"layerType" binding:"required,layertype"`
	RegionCode string `json:"regionCode" binding:"required"`
	Name       string `json:"name" binding:"required"`
	SeedPrompt string `json:"seedPrompt"`
}
