package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the public raid-helper API endpoint.
const DefaultBaseURL = "https://raid-helper.dev/api"

// ErrEventNotFound is returned for unknown or inaccessible events.
var ErrEventNotFound = errors.New("event not found")

// EventSignup is one signup entry of a raid-helper event.
type EventSignup struct {
	Name   string `json:"name"`
	UserID string `json:"userid"`
	Class  string `json:"class"`
	Spec   string `json:"spec"`
	Role   string `json:"role"`
}

// Event is the raid-helper event payload, trimmed to the fields the
// import consumes.
type Event struct {
	Status  string        `json:"status"`
	Date    string        `json:"date"`
	Time    string        `json:"time"`
	Signups []EventSignup `json:"signups"`
}

// When parses the event's scheduled start. The feed emits the date as
// day-month-year in UTC.
func (e Event) When() (time.Time, error) {
	return time.Parse("02-01-2006 15:04", e.Date+" "+e.Time)
}

// Client fetches events from the raid-helper API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a raid-helper client. An empty baseURL uses the
// public endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Event fetches one event by its identifier.
func (c *Client) Event(ctx context.Context, eventID string) (*Event, error) {
	url := fmt.Sprintf("%s/event/%s", c.baseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("raid-helper request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden:
		return nil, ErrEventNotFound
	default:
		return nil, fmt.Errorf("raid-helper returned status %d", resp.StatusCode)
	}

	var event Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to decode event payload: %w", err)
	}
	if event.Status == "failed" {
		return nil, ErrEventNotFound
	}
	return &event, nil
}
