package handler

import (
	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

type LayerHandler struct {
	layerSvc        service.LayerService
	contributionSvc service.ContributionService
}

func NewLayerHandler(layerSvc service.LayerService, contributionSvc service.ContributionService) *LayerHandler {
	return &LayerHandler{
		layerSvc:        layerSvc,
		contributionSvc: contributionSvc,
	}
}

// GetLayers 按类型与区域查询画布层级
func (s *LayerHandler) GetLayers(c *gin.Context) {
	layers, err := s.layerSvc.GetLayers(c.Request.Context(), c.Query("layerType"), c.Query("regionCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, layers)
}

func (s *LayerHandler) GetLayer(c *gin.Context) {
	layer, err := s.layerSvc.GetLayer(c.Request.Context(), c.Param("layer_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, layer)
}

func (s *LayerHandler) CreateLayer(c *gin.Context) {
	var req dto.LayerCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	layer, err := s.layerSvc.CreateLayer(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, layer)
}

// GetLayerContributions 查询层级内全部贡献，浏览数含未落库的缓冲增量
func (s *LayerHandler) GetLayerContributions(c *gin.Context) {
	contributions, err := s.contributionSvc.GetLayerContributions(c.Request.Context(), c.Param("layer_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, contributions)
}
