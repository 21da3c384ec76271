// Package apierror defines the closed error taxonomy that translates
// internal failures into the external JSON error envelope.
//
// Every failure kind carries a stable machine-readable code and a fixed
// HTTP status. An Error additionally records the moment it occurred, the
// request correlation id, the request path and an optional structured
// details payload. The taxonomy is a tagged variant (Kind + payload), so
// handlers can switch exhaustively instead of walking a type hierarchy.
//
// This package is the single translation point between internal errors
// and the wire format; no other layer formats error responses.
package apierror
