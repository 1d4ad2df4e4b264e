package models

import "time"

// Step identifies the visitor's current position in the booking wizard.
type Step string

const (
	StepService Step = "SERVICE"
	StepDate    Step = "DATE"
	StepTime    Step = "TIME"
	StepDetails Step = "DETAILS"
	StepConfirm Step = "CONFIRM"
)

// CustomerForm holds the details the visitor enters before submitting.
// All fields are free text; which ones are required is driven by the
// contractor's widget settings.
type CustomerForm struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	Description    string `json:"description,omitempty"`
	ReferralSource string `json:"referralSource,omitempty"`
}

// BookingConfirmation is the confirmation record returned by the
// submission gateway after a successful booking.
type BookingConfirmation struct {
	ConfirmationCode string `json:"confirmationCode"`
	ServiceType      string `json:"serviceType"`
	ScheduledDate    string `json:"scheduledDate"` // "YYYY-MM-DD"
	ScheduledTime    string `json:"scheduledTime"` // display string, e.g. "9:00 AM"
	CustomerEmail    string `json:"customerEmail"`
	CompanyName      string `json:"companyName"`
}

// BookingSession is one visitor's in-progress attempt to schedule an
// appointment. It is stored as a JSON blob in Redis under SessionID and
// mutated step by step until it reaches StepConfirm, which is terminal.
type BookingSession struct {
	SessionID    string `json:"sessionID"`
	ContractorID string `json:"contractorID"`

	Step Step `json:"step"`

	// Snapshot of the contractor's widget settings taken at session start.
	CompanyName    string        `json:"companyName"`
	Services       []ServiceType `json:"services"`
	MaxAdvanceDays int           `json:"maxAdvanceDays"`
	RequirePhone   bool          `json:"requirePhone"`
	RequireAddress bool          `json:"requireAddress"`

	SelectedService *ServiceType `json:"selectedService,omitempty"`
	SelectedDate    string       `json:"selectedDate,omitempty"` // "YYYY-MM-DD"
	SelectedTime    *Slot        `json:"selectedTime,omitempty"`

	CustomerForm     CustomerForm         `json:"customerForm"`
	SubmissionResult *BookingConfirmation `json:"submissionResult,omitempty"`

	// LastError is the most recent user-facing error message; cleared on
	// the next successful transition.
	LastError string `json:"lastError,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
