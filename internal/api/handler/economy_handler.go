package handler

import (
	"strconv"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

type EconomyHandler struct {
	economySvc service.EconomyService
}

func NewEconomyHandler(economySvc service.EconomyService) *EconomyHandler {
	return &EconomyHandler{economySvc: economySvc}
}

// Boost 助推一个贡献
func (s *EconomyHandler) Boost(c *gin.Context) {
	contributionID := c.Param("contribution_id")
	var req dto.BoostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.economySvc.Boost(c.Request.Context(), c.GetString("user_id"), contributionID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Invest 投资一个贡献
func (s *EconomyHandler) Invest(c *gin.Context) {
	contributionID := c.Param("contribution_id")
	var req dto.InvestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	investment, err := s.economySvc.Invest(c.Request.Context(), c.GetString("user_id"), contributionID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, investment)
}

// Purchase 金币套餐直充
func (s *EconomyHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.economySvc.PurchaseCoins(c.Request.Context(), c.GetString("user_id"), req.PackageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetTransactions 查询自己的账本流水，按时间倒序
func (s *EconomyHandler) GetTransactions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	txns, err := s.economySvc.GetTransactions(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, txns)
}

func (s *EconomyHandler) GetInvestments(c *gin.Context) {
	investments, err := s.economySvc.GetInvestments(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, investments)
}

func (s *EconomyHandler) GetBalance(c *gin.Context) {
	balance, err := s.economySvc.GetBalance(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, balance)
}
