package widget

import (
	"net/http/httptest"
	"testing"
	"time"

	"krib/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAvailabilityModule(t *testing.T, oracle *oracleStub) *AvailabilityModule {
	t.Helper()
	mr := miniredis.RunT(t)
	srv := httptest.NewServer(oracle.handler())
	t.Cleanup(srv.Close)
	return &AvailabilityModule{
		Oracle:   NewOracleClient(srv.URL),
		Cache:    redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		CacheTTL: time.Minute,
	}
}

func TestMonthBounds(t *testing.T) {
	start, end, err := monthBounds("2025-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", start)
	assert.Equal(t, "2025-04-30", end)

	start, end, err = monthBounds("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)

	_, _, err = monthBounds("April 2025")
	var selErr *SelectionError
	assert.ErrorAs(t, err, &selErr)
}

func TestGetMonthFetchesOnceAndCaches(t *testing.T) {
	date := futureDate(7)
	oracle := &oracleStub{window: windowFor(map[string][]models.Slot{
		date: {slot(date, "09:00", "9:00 AM", true)},
	})}
	module := newTestAvailabilityModule(t, oracle)

	first, err := module.GetMonth("ctr1", monthOf(date))
	require.NoError(t, err)
	assert.True(t, first[date].Available)

	second, err := module.GetMonth("ctr1", monthOf(date))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Repeat navigation to a fetched month never refetches.
	assert.Equal(t, 1, oracle.callCount())
}

func TestGetMonthFailureIsNotCached(t *testing.T) {
	date := futureDate(7)
	oracle := &oracleStub{fail: true, window: windowFor(map[string][]models.Slot{
		date: {slot(date, "09:00", "9:00 AM", true)},
	})}
	module := newTestAvailabilityModule(t, oracle)
	month := monthOf(date)

	window, err := module.GetMonth("ctr1", month)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, month, fetchErr.Month)
	assert.Nil(t, window)

	// Re-navigating to the same month re-attempts the fetch, and a
	// later success populates the calendar.
	oracle.setFail(false)
	window, err = module.GetMonth("ctr1", month)
	require.NoError(t, err)
	assert.True(t, window[date].Available)
	assert.Equal(t, 2, oracle.callCount())
}

func TestGetMonthKeysAreIndependent(t *testing.T) {
	dateA := futureDate(7)
	oracle := &oracleStub{window: windowFor(map[string][]models.Slot{
		dateA: {slot(dateA, "09:00", "9:00 AM", true)},
	})}
	module := newTestAvailabilityModule(t, oracle)
	monthA := monthOf(dateA)

	windowA, err := module.GetMonth("ctr1", monthA)
	require.NoError(t, err)
	require.True(t, windowA[dateA].Available)

	// Fetch a different month whose oracle answer is empty; it must not
	// clobber the cached entry for month A.
	nextMonth := time.Now().AddDate(0, 2, 0).Format("2006-01")
	oracle.mu.Lock()
	oracle.window = models.AvailabilityWindow{}
	oracle.mu.Unlock()

	windowB, err := module.GetMonth("ctr1", nextMonth)
	require.NoError(t, err)
	assert.Empty(t, windowB)

	cachedA, err := module.GetMonth("ctr1", monthA)
	require.NoError(t, err)
	assert.True(t, cachedA[dateA].Available)
	assert.Equal(t, 2, oracle.callCount())
}

func TestGetMonthCacheIsPerContractor(t *testing.T) {
	date := futureDate(7)
	oracle := &oracleStub{window: windowFor(map[string][]models.Slot{
		date: {slot(date, "09:00", "9:00 AM", true)},
	})}
	module := newTestAvailabilityModule(t, oracle)
	month := monthOf(date)

	_, err := module.GetMonth("ctr1", month)
	require.NoError(t, err)
	_, err = module.GetMonth("ctr2", month)
	require.NoError(t, err)

	assert.Equal(t, 2, oracle.callCount())
}
