package apierror

import (
	"encoding/json"
	"net/http"
	"time"
)

// envelope is the wire format of an error response.
type envelope struct {
	Error envelopeBody `json:"error"`
}

type envelopeBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	RequestID string         `json:"request_id,omitempty"`
	Path      string         `json:"path,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// Envelope returns the serializable representation of e.
func (e *Error) Envelope() any {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return envelope{Error: envelopeBody{
		Code:      e.Code,
		Message:   e.Message,
		Timestamp: ts.Format(time.RFC3339),
		RequestID: e.RequestID,
		Path:      e.Path,
		Details:   e.Details,
	}}
}

// WriteJSON renders err as the standardized JSON envelope with its fixed
// HTTP status. Non-taxonomy errors are classified as server errors
// first.
func WriteJSON(w http.ResponseWriter, err error) {
	apiErr := FromError(err)
	if apiErr == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.Status)
	// Encoding a map[string]any envelope cannot fail for the payloads
	// the taxonomy produces; a broken ResponseWriter is the caller's
	// problem.
	_ = json.NewEncoder(w).Encode(apiErr.Envelope())
}
