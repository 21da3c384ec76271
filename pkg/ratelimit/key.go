package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/clientip"
)

// maxKeyLength bounds rate limit keys so storage backends never see
// unbounded key material.
const maxKeyLength = 64

// KeyFunc extracts the client identifier from an HTTP request. An empty
// result means the request cannot be attributed and is not limited.
type KeyFunc func(*http.Request) string

// ByIP keys on the client IP resolved through proxy headers.
func ByIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.GetIP(r); ip != "" {
			return "ip:" + ip
		}
		return ""
	}
}

// ByHeader keys on a request header value, e.g. an API key.
func ByHeader(name string) KeyFunc {
	return func(r *http.Request) string {
		if v := r.Header.Get(name); v != "" {
			return strings.ToLower(name) + ":" + v
		}
		return ""
	}
}

// ByAPIKey keys on the X-API-Key header.
func ByAPIKey() KeyFunc {
	return ByHeader("X-API-Key")
}

// ByUserID keys on the authenticated user resolved by fn. Anonymous
// requests yield an empty key and fall through to other extractors.
func ByUserID(fn func(*http.Request) string) KeyFunc {
	return func(r *http.Request) string {
		if id := fn(r); id != "" {
			return "user:" + id
		}
		return ""
	}
}

// Composite combines several extractors into one key. Keys longer than
// the storage bound are SHA-256 hashed down to 32 hex characters.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			// 128 bits is plenty of collision resistance for limiter keys.
			return hex.EncodeToString(hash[:16])
		}
		return combined
	}
}
