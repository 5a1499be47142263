package handler

import (
	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

type BubbleHandler struct {
	bubbleSvc service.BubbleService
}

func NewBubbleHandler(bubbleSvc service.BubbleService) *BubbleHandler {
	return &BubbleHandler{bubbleSvc: bubbleSvc}
}

func (s *BubbleHandler) Create(c *gin.Context) {
	var req dto.BubbleCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	bubble, err := s.bubbleSvc.CreateBubble(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bubble)
}

func (s *BubbleHandler) GetBubble(c *gin.Context) {
	bubble, err := s.bubbleSvc.GetBubble(c.Request.Context(), c.Param("bubble_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bubble)
}

// GetUserBubbles 查询某用户名下的全部泡泡
func (s *BubbleHandler) GetUserBubbles(c *gin.Context) {
	bubbles, err := s.bubbleSvc.GetUserBubbles(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bubbles)
}
