package handler

import (
	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiSvc service.AIService
}

func NewAIHandler(aiSvc service.AIService) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

// Generate 根据提示词取图，降级链路保证总能返回 URL
func (s *AIHandler) Generate(c *gin.Context) {
	var req dto.GenerateImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	image, err := s.aiSvc.GenerateImage(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, image)
}
