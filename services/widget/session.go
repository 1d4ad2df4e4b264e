// File: widget/booking_session_service.go
package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"krib/models"
	"krib/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingSessionService) loadSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	sessionData, err := s.Cache.Get(ctx, sessionID).Result()
	if err != nil {
		return nil, ErrSessionNotFound
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(sessionData), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *DefaultBookingSessionService) saveSession(ctx context.Context, session *models.BookingSession) error {
	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Cache.Set(ctx, session.SessionID, sessionData, s.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

// InitiateSession creates a new booking session for one visitor, assigns
// it a unique SessionID, and stores it in Redis. A contractor with exactly
// one configured service has it auto-selected, and the session starts at
// the DATE step.
func (s *DefaultBookingSessionService) InitiateSession(contractorID string) (*models.BookingSession, error) {
	ctx := context.Background()

	settings, err := s.SettingsRepo.GetByContractorID(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load widget settings: %w", err)
	}

	session := models.BookingSession{
		SessionID:      uuid.New().String(),
		ContractorID:   contractorID,
		Step:           models.StepService,
		CompanyName:    settings.CompanyName,
		Services:       settings.Services,
		MaxAdvanceDays: settings.MaxAdvanceDays,
		RequirePhone:   settings.RequirePhone,
		RequireAddress: settings.RequireAddress,
		CreatedAt:      time.Now(),
	}

	if len(settings.Services) == 1 {
		svc := settings.Services[0]
		session.SelectedService = &svc
		session.Step = models.StepDate
	}

	if err := s.saveSession(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession returns the current session snapshot.
func (s *DefaultBookingSessionService) GetSession(sessionID string) (*models.BookingSession, error) {
	return s.loadSession(context.Background(), sessionID)
}

// SelectService sets the selected service and advances to DATE. The
// service must be a member of the contractor's configured list.
func (s *DefaultBookingSessionService) SelectService(sessionID, serviceID string) (*models.BookingSession, error) {
	ctx := context.Background()
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(session); err != nil {
		return nil, err
	}

	var selected *models.ServiceType
	for i := range session.Services {
		if session.Services[i].ID == serviceID {
			selected = &session.Services[i]
			break
		}
	}
	if selected == nil {
		return nil, &SelectionError{Field: "service", Message: "selected service is not offered"}
	}

	svc := *selected
	session.SelectedService = &svc
	session.Step = models.StepDate
	session.LastError = ""

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectDate sets the selected date and advances to TIME. The date must
// fall within [today, today+maxAdvanceDays] and be marked available in
// the month's availability window. Changing the date always resets any
// previously chosen time.
func (s *DefaultBookingSessionService) SelectDate(sessionID, date string) (*models.BookingSession, error) {
	ctx := context.Background()
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(session); err != nil {
		return nil, err
	}
	if session.SelectedService == nil {
		return nil, &InvalidTransitionError{From: session.Step, Message: "select a service first"}
	}

	// Parse in the server's own location so the comparison below is
	// midnight-to-midnight in one timezone. Parsing in UTC while today is
	// local shifts the window by the UTC offset and rejects valid dates.
	now := time.Now()
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, &SelectionError{Field: "date", Message: "date must be in YYYY-MM-DD format"}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) || day.After(today.AddDate(0, 0, session.MaxAdvanceDays)) {
		return nil, &SelectionError{Field: "date", Message: "date is outside the bookable window"}
	}

	window, err := s.Availability.GetMonth(session.ContractorID, date[:7])
	if err != nil {
		session.LastError = err.Error()
		if saveErr := s.saveSession(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}
	dayAvail, ok := window[date]
	if !ok || !dayAvail.Available {
		return nil, &SelectionError{Field: "date", Message: "date has no open slots"}
	}

	session.SelectedDate = date
	session.SelectedTime = nil
	session.Step = models.StepTime
	session.LastError = ""

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectTime sets the selected time slot and advances to DETAILS. The
// slot must belong to the slot set of the selected date and be available.
func (s *DefaultBookingSessionService) SelectTime(sessionID, start string) (*models.BookingSession, error) {
	ctx := context.Background()
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(session); err != nil {
		return nil, err
	}
	if session.SelectedDate == "" {
		return nil, &InvalidTransitionError{From: session.Step, Message: "select a date first"}
	}

	window, err := s.Availability.GetMonth(session.ContractorID, session.SelectedDate[:7])
	if err != nil {
		return nil, err
	}

	var selected *models.Slot
	for _, slot := range window[session.SelectedDate].Slots {
		if slot.Start == start && slot.Available {
			chosen := slot
			selected = &chosen
			break
		}
	}
	if selected == nil {
		return nil, &SelectionError{Field: "time", Message: "time slot is not available"}
	}

	session.SelectedTime = selected
	session.Step = models.StepDetails
	session.LastError = ""

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GoBack moves one step earlier among SERVICE, DATE, TIME and DETAILS.
// At SERVICE it is a no-op; at CONFIRM it fails.
func (s *DefaultBookingSessionService) GoBack(sessionID string) (*models.BookingSession, error) {
	ctx := context.Background()
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(session); err != nil {
		return nil, err
	}

	prev, err := previousStep(session.Step)
	if err != nil {
		return nil, err
	}
	if prev == session.Step {
		return session, nil
	}

	session.Step = prev
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// submitLockTTL bounds how long a stranded submission lock can block a
// session; it comfortably covers the gateway client's timeout.
const submitLockTTL = 30 * time.Second

func submitLockKey(sessionID string) string {
	return "submitting:" + sessionID
}

// Submit validates the customer form and, if it passes, posts the booking
// to the submission gateway. On success the session reaches the terminal
// CONFIRM step; on gateway failure it stays at DETAILS with lastError set
// so the visitor can correct and resubmit.
func (s *DefaultBookingSessionService) Submit(sessionID string, form models.CustomerForm) (*models.BookingSession, error) {
	logger := utils.GetLogger()
	ctx := context.Background()

	// One submission at a time per session. SETNX is atomic, so two
	// concurrent Submit calls cannot both reach the gateway, and the
	// expiry frees a lock stranded by a crash mid-call.
	locked, err := s.Cache.SetNX(ctx, submitLockKey(sessionID), 1, submitLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submission lock: %w", err)
	}
	if !locked {
		return nil, &SubmissionError{Message: "A booking submission is already in progress"}
	}
	defer s.Cache.Del(ctx, submitLockKey(sessionID))

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureMutable(session); err != nil {
		return nil, err
	}
	if session.Step != models.StepDetails || session.SelectedTime == nil {
		return nil, &InvalidTransitionError{From: session.Step, Message: "complete the earlier steps first"}
	}

	// The form is mutable at DETAILS regardless of validity, so edits
	// survive a failed validation round-trip.
	session.CustomerForm = form

	if errs := ValidateCustomerForm(form, session.RequirePhone, session.RequireAddress); errs != nil {
		if saveErr := s.saveSession(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return session, errs
	}

	confirmation, err := s.Gateway.SubmitBooking(session, form)
	if err != nil {
		session.LastError = err.Error()
		if saveErr := s.saveSession(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return session, err
	}

	session.SubmissionResult = confirmation
	session.Step = models.StepConfirm
	session.LastError = ""
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	record := models.BookingRecord{
		ContractorID:     session.ContractorID,
		ConfirmationCode: confirmation.ConfirmationCode,
		ServiceType:      confirmation.ServiceType,
		ScheduledDate:    confirmation.ScheduledDate,
		ScheduledTime:    confirmation.ScheduledTime,
		CustomerName:     form.Name,
		CustomerEmail:    form.Email,
		CustomerPhone:    form.Phone,
		ServiceAddress:   form.Address,
		Description:      form.Description,
		ReferralSource:   form.ReferralSource,
	}
	if s.RecordsRepo != nil {
		if _, err := s.RecordsRepo.Create(ctx, record); err != nil {
			logger.Warn("failed to persist booking record",
				zap.String("confirmationCode", confirmation.ConfirmationCode), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.EnqueueConfirmation(record); err != nil {
			logger.Warn("failed to enqueue confirmation notification",
				zap.String("confirmationCode", confirmation.ConfirmationCode), zap.Error(err))
		}
	}

	return session, nil
}

// CancelSession allows the widget to explicitly discard a booking session.
func (s *DefaultBookingSessionService) CancelSession(sessionID string) error {
	ctx := context.Background()
	if err := s.Cache.Del(ctx, sessionID).Err(); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

// GetMonthAvailability exposes the cached month window for calendar rendering.
func (s *DefaultBookingSessionService) GetMonthAvailability(contractorID, yearMonth string) (models.AvailabilityWindow, error) {
	return s.Availability.GetMonth(contractorID, yearMonth)
}
