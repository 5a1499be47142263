package handler

import (
	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

type ContributionHandler struct {
	contributionSvc service.ContributionService
}

func NewContributionHandler(contributionSvc service.ContributionService) *ContributionHandler {
	return &ContributionHandler{contributionSvc: contributionSvc}
}

// CreateContribution 在层级上放置新贡献，限流键为 用户ID:IP
func (s *ContributionHandler) CreateContribution(c *gin.Context) {
	var req dto.ContributionCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	contribution, err := s.contributionSvc.CreateContribution(
		c.Request.Context(), c.GetString("user_id"), c.ClientIP(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, contribution)
}

func (s *ContributionHandler) GetContribution(c *gin.Context) {
	contribution, err := s.contributionSvc.GetContribution(c.Request.Context(), c.Param("contribution_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, contribution)
}

func (s *ContributionHandler) GetUserContributions(c *gin.Context) {
	contributions, err := s.contributionSvc.GetUserContributions(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, contributions)
}

// TrackView 上报一次浏览
func (s *ContributionHandler) TrackView(c *gin.Context) {
	view, err := s.contributionSvc.TrackView(c.Request.Context(), c.Param("contribution_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}
