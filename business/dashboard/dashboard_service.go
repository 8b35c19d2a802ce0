package dashboard

import (
	"context"

	"storeRating/domain"
	"storeRating/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Counter is implemented by every repository whose table is summarised on the admin dashboard.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type dashboardService struct {
	users   Counter
	stores  Counter
	ratings Counter
}

func NewDashboardService(users, stores, ratings Counter) *dashboardService {
	return &dashboardService{
		users:   users,
		stores:  stores,
		ratings: ratings,
	}
}

// GetStats counts users, stores and ratings concurrently.
func (s *dashboardService) GetStats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalStores, err = s.stores.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRatings, err = s.ratings.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to count dashboard stats", err)
		return domain.DashboardStats{}, err
	}

	return stats, nil
}
