package service

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/pkg/consts"
	"github.com/KOVY310/chaos-canvas/internal/pkg/redis"
	"github.com/KOVY310/chaos-canvas/internal/repository"
)

// 每日种子提示词轮换表，按年内天数滚动取三条
var dailySeedPrompts = []struct {
	Prompt string
	Style  string
}{
	{"a city skyline made of melting clocks", "surreal"},
	{"cats running a street food market", "cartoon"},
	{"ocean waves frozen into glass sculptures", "photorealistic"},
	{"a forest where the trees are neon signs", "cyberpunk"},
	{"breakfast food orbiting a tiny planet", "3d render"},
	{"grandma's living room inside a volcano", "collage"},
	{"robots learning to paint watercolors", "watercolor"},
	{"a library built inside a whale", "storybook"},
	{"traffic jam of hot air balloons", "flat illustration"},
	{"mountains knitted out of wool", "craft"},
	{"a disco inside an ancient temple", "vaporwave"},
	{"penguins holding a formal board meeting", "oil painting"},
}

const dailySeedCount = 3

type ViralService interface {
	GetLeagueStandings(ctx context.Context, limit int) ([]*dto.LeagueEntryDTO, error)
	GetDailySeeds(ctx context.Context) ([]*dto.DailySeedDTO, error)
	// RebuildLeague 从数据库聚合各国数据并重建排行榜缓存，由定时任务调用
	RebuildLeague(ctx context.Context) error
}

type viralServiceImpl struct {
	contributionRepo repository.ContributionRepo

	now func() time.Time
}

func NewViralService(contributionRepo repository.ContributionRepo) ViralService {
	return &viralServiceImpl{
		contributionRepo: contributionRepo,
		now:              time.Now,
	}
}

func (s *viralServiceImpl) GetLeagueStandings(ctx context.Context, limit int) ([]*dto.LeagueEntryDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, err := redis.ZRevRangeWithScores(ctx, consts.LeagueScoreKey, 0, int64(limit-1))
	if err != nil {
		return nil, err
	}

	standings := make([]*dto.LeagueEntryDTO, 0, len(entries))
	for i, z := range entries {
		country, ok := z.Member.(string)
		if !ok {
			continue
		}
		standings = append(standings, &dto.LeagueEntryDTO{
			Rank:          i + 1,
			CountryCode:   country,
			Score:         int64(z.Score),
			Contributions: redis.HGetInt64(ctx, consts.LeagueContributionsKey, country),
			Boosts:        redis.HGetInt64(ctx, consts.LeagueBoostsKey, country),
		})
	}
	return standings, nil
}

func (s *viralServiceImpl) GetDailySeeds(_ context.Context) ([]*dto.DailySeedDTO, error) {
	day := s.now().YearDay()

	seeds := make([]*dto.DailySeedDTO, 0, dailySeedCount)
	for i := 0; i < dailySeedCount; i++ {
		idx := (day*dailySeedCount + i) % len(dailySeedPrompts)
		seeds = append(seeds, &dto.DailySeedDTO{
			ID:     fmt.Sprintf("seed-%d-%d", day, i),
			Prompt: dailySeedPrompts[idx].Prompt,
			Style:  dailySeedPrompts[idx].Style,
		})
	}
	return seeds, nil
}

func (s *viralServiceImpl) RebuildLeague(ctx context.Context) error {
	stats, err := s.contributionRepo.AggregateCountryStats(ctx)
	if err != nil {
		return err
	}

	for _, stat := range stats {
		if stat.CountryCode == "" {
			continue
		}
		score := stat.Contributions*10 + stat.Boosts*5
		if err := redis.ZAdd(ctx, consts.LeagueScoreKey, float64(score), stat.CountryCode); err != nil {
			return err
		}
		_ = redis.HSet(ctx, consts.LeagueContributionsKey, stat.CountryCode, stat.Contributions)
		_ = redis.HSet(ctx, consts.LeagueBoostsKey, stat.CountryCode, stat.Boosts)
	}

	log.InfoContext(ctx, "league standings rebuilt", "countries", len(stats))
	return nil
}
