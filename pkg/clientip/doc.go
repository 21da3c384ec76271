// Package clientip extracts the originating client's IP address from an
// *http.Request when the application runs behind one or more reverse
// proxies.
//
// The resolution algorithm examines proxy headers in descending priority
// until the first valid IP address is found:
//
//  1. X-Forwarded-For – comma-separated list (the first valid IP is used)
//  2. X-Real-IP       – set by reverse proxies such as Nginx
//  3. RemoteAddr      – TCP peer address as a fallback
//
// Helper functions cover the common scenarios:
//
//   - GetIP extracts the client IP from an *http.Request.
//   - SetIPToContext and GetIPFromContext store/retrieve the resolved
//     address inside a context.Context.
//   - Middleware is a net/http compatible middleware that adds the IP to
//     the request's context so downstream handlers can fetch it without
//     duplicating the resolution logic.
//
// # Usage
//
//	import "github.com/vijaygvdr/VitaCheckLabs-BE/pkg/clientip"
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    ip := clientip.GetIPFromContext(r.Context())
//	    log.Printf("client ip: %s", ip)
//	}
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", handler)
//	http.ListenAndServe(":8080", clientip.Middleware(mux))
//
// # Error Handling
//
// GetIP never returns an error. If no valid address is found an empty
// string is returned so callers can decide how to proceed.
package clientip
