package handler

import (
	"strconv"

	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
)

type ViralHandler struct {
	viralSvc service.ViralService
}

func NewViralHandler(viralSvc service.ViralService) *ViralHandler {
	return &ViralHandler{viralSvc: viralSvc}
}

// GetLeague 国家排行榜
func (s *ViralHandler) GetLeague(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}

	standings, err := s.viralSvc.GetLeagueStandings(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, standings)
}

// GetDailySeeds 当日创作种子提示词
func (s *ViralHandler) GetDailySeeds(c *gin.Context) {
	seeds, err := s.viralSvc.GetDailySeeds(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, seeds)
}
