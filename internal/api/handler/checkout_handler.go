package handler

import (
	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutSvc service.CheckoutService
}

func NewCheckoutHandler(checkoutSvc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

// CreateSession 创建支付结账会话
func (s *CheckoutHandler) CreateSession(c *gin.Context) {
	var req dto.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	session, err := s.checkoutSvc.CreateSession(c.Request.Context(), c.GetString("user_id"), req.PackageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}
