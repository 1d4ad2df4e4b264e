package widget

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"krib/models"
)

// OracleClient talks to the remote availability oracle. The oracle owns
// all slot computation; this client only fetches and decodes.
type OracleClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewOracleClient returns an availability oracle client for the given base URL.
func NewOracleClient(baseURL string) *OracleClient {
	return &OracleClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchWindow fetches the availability window for a contractor between
// start and end dates (inclusive, "YYYY-MM-DD").
func (c *OracleClient) FetchWindow(contractorID, start, end string) (models.AvailabilityWindow, error) {
	reqURL := fmt.Sprintf("%s/availability?contractorId=%s&start=%s&end=%s",
		c.BaseURL, url.QueryEscape(contractorID), url.QueryEscape(start), url.QueryEscape(end))

	resp, err := c.HTTPClient.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("availability request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability request returned status %d", resp.StatusCode)
	}

	var window models.AvailabilityWindow
	if err := json.NewDecoder(resp.Body).Decode(&window); err != nil {
		return nil, fmt.Errorf("failed to parse availability response: %w", err)
	}
	return window, nil
}
