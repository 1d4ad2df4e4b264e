package widget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	settingsRepo "krib/database/repository/settings"
	"krib/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ---- in-memory repository fakes ----

type fakeSettingsRepo struct {
	settings map[string]*models.WidgetSettings
}

func (f *fakeSettingsRepo) GetByContractorID(_ context.Context, contractorID string) (*models.WidgetSettings, error) {
	s, ok := f.settings[contractorID]
	if !ok {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return s, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *models.WidgetSettings) error {
	f.settings[s.ContractorID] = s
	return nil
}

type fakeRecordsRepo struct {
	mu      sync.Mutex
	records []models.BookingRecord
}

func (f *fakeRecordsRepo) Create(_ context.Context, record models.BookingRecord) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	f.records = append(f.records, record)
	return record.ID, nil
}

func (f *fakeRecordsRepo) GetByID(_ context.Context, id string) (*models.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, errors.New("booking record not found")
}

func (f *fakeRecordsRepo) GetByContractorID(_ context.Context, contractorID string) ([]models.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BookingRecord
	for _, r := range f.records {
		if r.ContractorID == contractorID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	enqueued []models.BookingRecord
}

func (f *fakeNotifier) EnqueueConfirmation(record models.BookingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enqueued = append(f.enqueued, record)
	return nil
}

// ---- remote service stubs ----

type oracleStub struct {
	mu     sync.Mutex
	calls  int
	fail   bool
	window models.AvailabilityWindow
}

func (o *oracleStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o.mu.Lock()
		o.calls++
		fail := o.fail
		window := o.window
		o.mu.Unlock()

		if fail {
			http.Error(w, `{"error":"oracle unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(window)
	}
}

func (o *oracleStub) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func (o *oracleStub) setFail(fail bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fail = fail
}

type gatewayStub struct {
	mu           sync.Mutex
	status       int
	errorMessage string
	delay        time.Duration
	confirmation models.BookingConfirmation
	requests     []map[string]any
}

func (g *gatewayStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)

		g.mu.Lock()
		g.requests = append(g.requests, body)
		status := g.status
		errMsg := g.errorMessage
		confirmation := g.confirmation
		delay := g.delay
		g.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": errMsg})
			return
		}
		json.NewEncoder(w).Encode(confirmation)
	}
}

func (g *gatewayStub) setResponse(status int, errMsg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
	g.errorMessage = errMsg
}

func (g *gatewayStub) requestCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

// ---- helpers ----

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func monthOf(date string) string {
	return date[:7]
}

func slot(date, hhmm, display string, available bool) models.Slot {
	return models.Slot{
		Start:        date + "T" + hhmm,
		StartDisplay: display,
		Available:    available,
	}
}

func windowFor(days map[string][]models.Slot) models.AvailabilityWindow {
	window := models.AvailabilityWindow{}
	for date, slots := range days {
		count := 0
		for _, s := range slots {
			if s.Available {
				count++
			}
		}
		window[date] = models.DayAvailability{
			Available:      count > 0,
			AvailableCount: count,
			DayLabel:       date,
			Slots:          slots,
		}
	}
	return window
}

func testSettings(services ...models.ServiceType) *models.WidgetSettings {
	return &models.WidgetSettings{
		ContractorID:   "ctr1",
		CompanyName:    "Krib Plumbing Co",
		Services:       services,
		MaxAdvanceDays: 30,
	}
}

// newTestService wires a DefaultBookingSessionService against miniredis
// and httptest doubles for the oracle and gateway.
func newTestService(t *testing.T, settings *models.WidgetSettings, oracle *oracleStub, gateway *gatewayStub) (*DefaultBookingSessionService, *fakeRecordsRepo, *fakeNotifier) {
	t.Helper()

	mr := miniredis.RunT(t)
	sessionClient := redis.NewClient(&redis.Options{Addr: mr.Addr(), DB: 0})
	availabilityClient := redis.NewClient(&redis.Options{Addr: mr.Addr(), DB: 1})

	oracleSrv := httptest.NewServer(oracle.handler())
	t.Cleanup(oracleSrv.Close)

	gatewaySrv := httptest.NewServer(gateway.handler())
	t.Cleanup(gatewaySrv.Close)

	records := &fakeRecordsRepo{}
	notifier := &fakeNotifier{}

	svc := &DefaultBookingSessionService{
		SettingsRepo: &fakeSettingsRepo{settings: map[string]*models.WidgetSettings{settings.ContractorID: settings}},
		RecordsRepo:  records,
		Availability: &AvailabilityModule{
			Oracle:   NewOracleClient(oracleSrv.URL),
			Cache:    availabilityClient,
			CacheTTL: time.Minute,
		},
		Gateway:    NewGatewayClient(gatewaySrv.URL),
		Notifier:   notifier,
		Cache:      sessionClient,
		SessionTTL: time.Minute,
	}
	return svc, records, notifier
}
