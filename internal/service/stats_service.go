package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
	"grafeio-data/internal/store"
)

// Activity windows.
const (
	WindowWeek  = "week"
	WindowMonth = "month"
	WindowYear  = "year"
)

const (
	dashboardCacheKey = "stats:dashboard"
	dashboardCacheTTL = 60 * time.Second
)

// StatsService dashboard aggregates. The dashboard snapshot is cached in
// the KV store for a short interval; the activity panel always hits the
// database since its window moves with the clock.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Activity(ctx context.Context, window string) (*repository.Activity, error)
}

// DashboardStats the dashboard snapshot: headline totals, ranked grouped
// counts and the request completion rate.
type DashboardStats struct {
	Totals                 repository.Totals       `json:"totals"`
	CitizensByMunicipality []repository.GroupCount `json:"citizens_by_municipality"`
	CitizensByDistrict     []repository.GroupCount `json:"citizens_by_district"`
	MilitaryByRank         []repository.GroupCount `json:"military_by_rank"`
	EssoStatistics         []repository.GroupCount `json:"esso_statistics"`
	RequestsByStatus       []repository.GroupCount `json:"requests_by_status"`
	CompletionRate         float64                 `json:"completion_rate"`
}

type statsService struct {
	repo   repository.StatsRepository
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time
}

func NewStatsService(repo repository.StatsRepository, kv store.KV, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, kv: kv, logger: logger, now: time.Now}
}

// invalidateDashboard drops the cached dashboard snapshot after a write
// that changes its inputs. Best effort; the TTL bounds staleness anyway.
func invalidateDashboard(ctx context.Context, kv store.KV, logger *zap.Logger) {
	if kv == nil {
		return
	}
	if err := kv.Delete(ctx, dashboardCacheKey); err != nil && err != store.ErrMiss {
		logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

// TopN keeps the n highest-count groups. Input arrives ordered by count
// descending; ties keep their incoming order (stable cut, no re-sort).
func TopN(groups []repository.GroupCount, n int) []repository.GroupCount {
	if n <= 0 || len(groups) <= n {
		return groups
	}
	return groups[:n]
}

// CompletionRate completed/total as a fraction in [0,1]. An empty
// collection reports 0, never NaN.
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if s.kv != nil {
		if cached, err := s.kv.Get(ctx, dashboardCacheKey); err == nil {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
			// unreadable cache entry: fall through and rebuild
		}
	}

	stats, err := s.buildDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.kv != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.kv.Set(ctx, dashboardCacheKey, string(payload), dashboardCacheTTL); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *statsService) buildDashboard(ctx context.Context) (*DashboardStats, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		s.logger.Error("dashboard totals failed", zap.Error(err))
		return nil, err
	}
	byMunicipality, err := s.repo.CitizensByMunicipality(ctx)
	if err != nil {
		return nil, err
	}
	byDistrict, err := s.repo.CitizensByDistrict(ctx)
	if err != nil {
		return nil, err
	}
	byRank, err := s.repo.MilitaryByRank(ctx)
	if err != nil {
		return nil, err
	}
	byEsso, err := s.repo.MilitaryByEsso(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.RequestsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, g := range byStatus {
		if g.Key == domain.RequestCompleted {
			completed = g.Count
		}
	}

	return &DashboardStats{
		Totals:                 totals,
		CitizensByMunicipality: TopN(byMunicipality, 5),
		CitizensByDistrict:     byDistrict,
		MilitaryByRank:         TopN(byRank, 5),
		EssoStatistics:         TopN(byEsso, 8),
		RequestsByStatus:       byStatus,
		CompletionRate:         CompletionRate(completed, totals.Requests),
	}, nil
}

func (s *statsService) Activity(ctx context.Context, window string) (*repository.Activity, error) {
	var days int
	switch window {
	case WindowWeek, "":
		days = 7
	case WindowMonth:
		days = 30
	case WindowYear:
		days = 365
	default:
		return nil, fmt.Errorf("unknown activity window: %q", window)
	}

	since := s.now().AddDate(0, 0, -days)
	activity, err := s.repo.RecentActivity(ctx, since)
	if err != nil {
		s.logger.Error("recent activity failed", zap.String("window", window), zap.Error(err))
		return nil, err
	}
	return &activity, nil
}
