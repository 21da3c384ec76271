package guard

import (
	"net/http"
	"strconv"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/apierror"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/clientip"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/ratelimit"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/requestid"
)

// Middleware wires the guard into an HTTP stack: request IDs and client
// IPs are resolved into the context, the named rate-limit rule is
// consulted per request, X-RateLimit-* headers are set on every limited
// response, and rejections render the canonical error envelope.
//
// keyFunc must not be nil; requests it cannot attribute (empty key) pass
// through unlimited.
func (g *Guard) Middleware(rule string, keyFunc ratelimit.KeyFunc) func(http.Handler) http.Handler {
	if keyFunc == nil {
		panic("guard.Middleware: keyFunc is required")
	}

	return func(next http.Handler) http.Handler {
		limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := g.Check(r.Context(), Request{
				ClientKey: keyFunc(r),
				Rule:      rule,
				Path:      r.URL.Path,
				RequestID: requestid.FromContext(r.Context()),
			})

			if result != nil {
				ratelimit.SetHeaders(w, result)
			}

			if err != nil {
				if result != nil && !result.Allowed {
					retryAfter := int(result.RetryAfter().Seconds())
					if retryAfter < 1 {
						retryAfter = 1
					}
					w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				}
				apierror.WriteJSON(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})

		return requestid.Middleware(clientip.Middleware(limited))
	}
}
