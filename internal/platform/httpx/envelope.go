// Package httpx interprets the backend's response envelope and provides the
// JSON responders the mock server uses. Envelope interpretation lives here
// and nowhere else: the backend encodes its status field inconsistently
// across endpoints and every caller must go through the same normalization.
package httpx

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wrapper every backend endpoint returns. Pagination metadata
// is optional and differs per endpoint; absent fields stay nil so callers can
// tell "not sent" apart from zero.
type Envelope struct {
	Status      json.RawMessage `json:"status"`
	Message     string          `json:"message,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Permissions json.RawMessage `json:"permissions,omitempty"`
	NextPageURL *string         `json:"next_page_url,omitempty"`
	CurrentPage *int            `json:"current_page,omitempty"`
	LastPage    *int            `json:"last_page,omitempty"`
	PerPage     *int            `json:"per_page,omitempty"`
}

// OK reports whether the envelope carries a success status. The backend sends
// the status as the number 200 on some endpoints and as the string "200" on
// others; both count.
func (e *Envelope) OK() bool {
	if e == nil || len(e.Status) == 0 {
		return false
	}
	var num int
	if err := json.Unmarshal(e.Status, &num); err == nil {
		return num == 200
	}
	var str string
	if err := json.Unmarshal(e.Status, &str); err == nil {
		return str == "200"
	}
	return false
}

// Err builds the failure for a non-success envelope, carrying the backend's
// message through when one was sent.
func (e *Envelope) Err() error {
	if e != nil && e.Message != "" {
		return fmt.Errorf("%w: %s", ErrRemote, e.Message)
	}
	return fmt.Errorf("%w: request rejected", ErrRemote)
}

// DecodeData unmarshals the envelope's data payload into target. A missing
// data field decodes to the target's zero value.
func (e *Envelope) DecodeData(target any) error {
	if e == nil || len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, target); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrTransport, err)
	}
	return nil
}
