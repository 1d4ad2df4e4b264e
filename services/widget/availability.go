package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"krib/models"
	"krib/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityModule mediates calendar navigation: one oracle fetch per
// (contractor, month), cached in Redis. Each fetch result only ever writes
// its own month key, and failed fetches are never cached, so re-navigating
// to a month retries the fetch.
type AvailabilityModule struct {
	Oracle   *OracleClient
	Cache    *redis.Client
	CacheTTL time.Duration
}

// NewAvailabilityModule returns an availability module backed by the
// shared availability cache client.
func NewAvailabilityModule(oracle *OracleClient, ttl time.Duration) *AvailabilityModule {
	return &AvailabilityModule{
		Oracle:   oracle,
		Cache:    utils.GetAvailabilityCacheClient(),
		CacheTTL: ttl,
	}
}

func availabilityCacheKey(contractorID, yearMonth string) string {
	return fmt.Sprintf("availability:%s:%s", contractorID, yearMonth)
}

// monthBounds returns the inclusive first and last dates of a "YYYY-MM" month.
func monthBounds(yearMonth string) (string, string, error) {
	start, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return "", "", &SelectionError{Field: "month", Message: "month must be in YYYY-MM format"}
	}
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

// GetMonth returns the availability window for one contractor month,
// fetching through the oracle on a cache miss.
func (m *AvailabilityModule) GetMonth(contractorID, yearMonth string) (models.AvailabilityWindow, error) {
	logger := utils.GetLogger()
	ctx := context.Background()
	key := availabilityCacheKey(contractorID, yearMonth)

	cached, err := m.Cache.Get(ctx, key).Result()
	if err == nil {
		var window models.AvailabilityWindow
		if err := json.Unmarshal([]byte(cached), &window); err == nil {
			return window, nil
		}
		// Corrupt entry; drop it and fall through to a fresh fetch.
		m.Cache.Del(ctx, key)
	}

	start, end, err := monthBounds(yearMonth)
	if err != nil {
		return nil, err
	}

	window, err := m.Oracle.FetchWindow(contractorID, start, end)
	if err != nil {
		logger.Warn("availability fetch failed",
			zap.String("contractorID", contractorID),
			zap.String("month", yearMonth),
			zap.Error(err))
		return nil, &FetchError{Month: yearMonth, Message: "Could not load availability. Please try again."}
	}

	data, err := json.Marshal(window)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal availability window: %w", err)
	}
	if err := m.Cache.Set(ctx, key, data, m.CacheTTL).Err(); err != nil {
		// Serving the fetched window matters more than caching it.
		logger.Warn("failed to cache availability window",
			zap.String("month", yearMonth), zap.Error(err))
	}

	return window, nil
}
