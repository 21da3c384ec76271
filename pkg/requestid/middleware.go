package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header is the canonical request-ID header; CorrelationHeader is an
	// accepted inbound alias for clients that propagate correlation IDs
	// instead.
	Header            = "X-Request-ID"
	CorrelationHeader = "X-Correlation-ID"

	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := FromRequest(r)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

// FromRequest returns the client-supplied request ID, or an empty string
// when neither header carries a valid value.
func FromRequest(r *http.Request) string {
	for _, header := range []string{Header, CorrelationHeader} {
		if id := r.Header.Get(header); isValidRequestID(id) {
			return id
		}
	}
	return ""
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
