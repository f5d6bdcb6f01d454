package inventory

import (
	"context"
	"sync"

	"github.com/armoryhq/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

// DashboardCounters holds the numeric counters shown on the dashboard
type DashboardCounters struct {
	Items      int64 `json:"items"`
	Sellers    int64 `json:"sellers"`
	Slots      int64 `json:"slots"`
	Listings   int64 `json:"listings"`
	TotalStock int64 `json:"total_stock"`
}

// CounterCache caches dashboard counters with a TTL.
// Get returns (nil, nil) on a cache miss.
type CounterCache interface {
	Get(ctx context.Context) (*DashboardCounters, error)
	Set(ctx context.Context, counters DashboardCounters) error
}

// DashboardService aggregates the dashboard counters. The five counts are
// independent reads issued concurrently; results are cached briefly since
// the dashboard tolerates slightly stale numbers. Cache failures are
// logged and degrade to a direct read, never to a request failure.
type DashboardService struct {
	items     inventory.ItemRepository
	sellers   inventory.SellerRepository
	slots     inventory.SlotRepository
	instances inventory.ItemInstanceRepository
	cache     CounterCache
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	items inventory.ItemRepository,
	sellers inventory.SellerRepository,
	slots inventory.SlotRepository,
	instances inventory.ItemInstanceRepository,
	cache CounterCache,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		items:     items,
		sellers:   sellers,
		slots:     slots,
		instances: instances,
		cache:     cache,
		logger:    logger,
	}
}

// Counters returns the dashboard counters, served from cache when fresh
func (s *DashboardService) Counters(ctx context.Context) (DashboardCounters, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("counter cache read failed", zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	counters, err := s.countAll(ctx)
	if err != nil {
		return DashboardCounters{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, counters); err != nil {
			s.logger.Warn("counter cache write failed", zap.Error(err))
		}
	}

	return counters, nil
}

func (s *DashboardService) countAll(ctx context.Context) (DashboardCounters, error) {
	var (
		wg       sync.WaitGroup
		counters DashboardCounters
		errs     [5]error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		counters.Items, errs[0] = s.items.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		counters.Sellers, errs[1] = s.sellers.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		counters.Slots, errs[2] = s.slots.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		counters.Listings, errs[3] = s.instances.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		counters.TotalStock, errs[4] = s.instances.TotalStock(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return DashboardCounters{}, err
		}
	}
	return counters, nil
}
