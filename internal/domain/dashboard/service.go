package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fertilia/clinic/internal/platform/cache"
)

const statsCacheKey = "dashboard:stats"

type Service struct {
	repo     Repository
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewService(repo Repository, c *cache.Cache, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Service{repo: repo, cache: c, cacheTTL: cacheTTL}
}

// Stats returns the dashboard snapshot, served from cache when fresh.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var cached Stats
	if hit, err := s.cache.GetJSON(ctx, statsCacheKey, &cached); err != nil {
		log.Warn().Err(err).Msg("dashboard cache read failed")
	} else if hit {
		return &cached, nil
	}

	stats, err := s.repo.Collect(ctx)
	if err != nil {
		return nil, err
	}
	finalize(stats)

	if err := s.cache.SetJSON(ctx, statsCacheKey, stats, s.cacheTTL); err != nil {
		log.Warn().Err(err).Msg("dashboard cache write failed")
	}
	return stats, nil
}

// Invalidate drops the cached snapshot so the next read recomputes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, statsCacheKey)
}

// finalize computes the derived fields: the success rate and the zero-filled
// twelve-month series.
func finalize(s *Stats) {
	if s.CompletedTreatments > 0 {
		s.SuccessRate = float64(s.SuccessfulTreatments) / float64(s.CompletedTreatments) * 100
	}

	byMonth := make(map[int]int, len(s.MonthlyTreatments))
	for _, ms := range s.MonthlyTreatments {
		byMonth[ms.Month] = ms.Count
	}
	series := make([]MonthStat, 12)
	for m := 1; m <= 12; m++ {
		series[m-1] = MonthStat{Month: m, Count: byMonth[m]}
	}
	s.MonthlyTreatments = series

	if s.RiskDistribution == nil {
		s.RiskDistribution = make(map[string]int)
	}
	s.GeneratedAt = time.Now()
}
