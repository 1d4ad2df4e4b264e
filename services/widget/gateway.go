package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"krib/models"
)

// genericSubmissionFailure is shown when the gateway is unreachable or
// returns an unparseable body.
const genericSubmissionFailure = "Failed to complete booking. Please try again."

// GatewayClient talks to the remote submission gateway, the only write
// the booking flow ever issues.
type GatewayClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewGatewayClient returns a submission gateway client for the given base URL.
func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type bookingPayload struct {
	ContractorID   string `json:"contractorId"`
	ServiceType    string `json:"serviceType"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone,omitempty"`
	ServiceAddress string `json:"serviceAddress,omitempty"`
	Description    string `json:"description,omitempty"`
	ReferralSource string `json:"referralSource,omitempty"`
}

// SubmitBooking POSTs the completed session to the gateway and decodes
// either a confirmation or an {error} body. Network-level failures are
// reported with a generic message and no automatic retry.
func (c *GatewayClient) SubmitBooking(session *models.BookingSession, form models.CustomerForm) (*models.BookingConfirmation, error) {
	payload := bookingPayload{
		ContractorID:   session.ContractorID,
		ServiceType:    session.SelectedService.ID,
		Date:           session.SelectedDate,
		Time:           session.SelectedTime.Start,
		CustomerName:   form.Name,
		CustomerEmail:  form.Email,
		CustomerPhone:  form.Phone,
		ServiceAddress: form.Address,
		Description:    form.Description,
		ReferralSource: form.ReferralSource,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking payload: %w", err)
	}

	resp, err := c.HTTPClient.Post(c.BaseURL+"/book", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &SubmissionError{Message: genericSubmissionFailure}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var remote struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil || remote.Error == "" {
			return nil, &SubmissionError{Message: genericSubmissionFailure}
		}
		return nil, &SubmissionError{Message: remote.Error}
	}

	var confirmation models.BookingConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, &SubmissionError{Message: genericSubmissionFailure}
	}
	return &confirmation, nil
}
