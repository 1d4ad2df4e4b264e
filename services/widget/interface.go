package widget

import (
	"time"

	bookingRecordRepo "krib/database/repository/bookingrecord"
	settingsRepo "krib/database/repository/settings"
	"krib/models"

	"github.com/go-redis/redis/v8"
)

// BookingSessionService defines the interface for managing a stateful
// booking widget session.
type BookingSessionService interface {
	InitiateSession(contractorID string) (*models.BookingSession, error)
	GetSession(sessionID string) (*models.BookingSession, error)
	SelectService(sessionID, serviceID string) (*models.BookingSession, error)
	SelectDate(sessionID, date string) (*models.BookingSession, error)
	SelectTime(sessionID, start string) (*models.BookingSession, error)
	GoBack(sessionID string) (*models.BookingSession, error)
	Submit(sessionID string, form models.CustomerForm) (*models.BookingSession, error)
	CancelSession(sessionID string) error
	GetMonthAvailability(contractorID, yearMonth string) (models.AvailabilityWindow, error)
}

// ConfirmationNotifier enqueues out-of-band confirmation notifications
// after a successful booking.
type ConfirmationNotifier interface {
	EnqueueConfirmation(record models.BookingRecord) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	SettingsRepo settingsRepo.WidgetSettingsRepository
	RecordsRepo  bookingRecordRepo.BookingRecordRepository
	Availability *AvailabilityModule
	Gateway      *GatewayClient
	Notifier     ConfirmationNotifier
	Cache        *redis.Client
	SessionTTL   time.Duration
}
