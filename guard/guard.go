package guard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/apierror"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/logger"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/ratelimit"
	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/security"
)

// Guard runs the full request-defense pipeline: schema validation with
// attack-pattern detection first, then the rate limiter. A payload that
// fails validation never consumes rate budget.
type Guard struct {
	limiter ratelimit.Limiter
	log     *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the structured logger used for security and limiter
// events.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Guard around the given limiter. A nil limiter disables
// rate limiting; validation still runs.
func New(limiter ratelimit.Limiter, opts ...Option) *Guard {
	g := &Guard{
		limiter: limiter,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request carries everything Check needs to evaluate one inbound
// request.
type Request struct {
	// ClientKey identifies the caller for rate limiting; empty skips the
	// limiter.
	ClientKey string

	// Rule names the rate-limit rule to consult; empty skips the limiter.
	Rule string

	// Path and RequestID annotate any error produced.
	Path      string
	RequestID string

	// Fields holds the raw input values validated against Schema.
	Fields map[string]string

	// Schema declares the validation profile; nil skips validation.
	Schema *Schema
}

// Check evaluates req through the pipeline. On success it returns the
// rate limit state of the tightest window (nil when the limiter was
// skipped). On failure the returned error is always an *apierror.Error
// carrying the request ID and path:
//
//   - attack patterns on a non-rich field reject with SECURITY_ERROR,
//   - accumulated validation failures reject with VALIDATION_ERROR,
//   - an exhausted rate window rejects with RATE_LIMIT_EXCEEDED plus the
//     violated window's state in the Result.
//
// Store errors fail open: the request proceeds and the incident is
// logged.
func (g *Guard) Check(ctx context.Context, req Request) (*ratelimit.Result, error) {
	if req.Schema != nil {
		_, verrs, findings := req.Schema.Validate(req.Fields)

		if len(findings) > 0 {
			categories := categoryStrings(findings)
			g.log.WarnContext(ctx, "malicious request content detected",
				logger.Component("guard"),
				logger.Path(req.Path),
				logger.RequestID(req.RequestID),
				logger.Categories(categories),
			)
			return nil, apierror.Security("Input contains potentially malicious content", categories).
				WithRequest(req.RequestID, req.Path)
		}

		if !verrs.IsEmpty() {
			return nil, apierror.Validation(verrs, len(verrs)).
				WithRequest(req.RequestID, req.Path)
		}
	}

	if g.limiter == nil || req.Rule == "" || req.ClientKey == "" {
		return nil, nil
	}

	result, err := g.limiter.Allow(ctx, req.Rule, req.ClientKey)
	if err != nil {
		if errors.Is(err, ratelimit.ErrUnknownRule) {
			g.log.ErrorContext(ctx, "rate limit rule misconfigured",
				logger.Component("guard"),
				logger.Rule(req.Rule),
				logger.Error(err),
			)
			return nil, apierror.Server(err).WithRequest(req.RequestID, req.Path)
		}
		// Store trouble fails open rather than blocking traffic.
		g.log.ErrorContext(ctx, "rate limit check failed, allowing request",
			logger.Component("guard"),
			logger.Rule(req.Rule),
			logger.Error(err),
		)
		return nil, nil
	}

	if !result.Allowed {
		g.log.WarnContext(ctx, "rate limit exceeded",
			logger.Component("guard"),
			logger.Rule(req.Rule),
			logger.Window(result.Window),
			logger.Path(req.Path),
			logger.RequestID(req.RequestID),
		)
		return result, apierror.RateLimit("Rate limit exceeded. Please try again later.",
			result.Limit, result.Remaining, result.RetryAfter()).
			WithRequest(req.RequestID, req.Path)
	}

	return result, nil
}

func categoryStrings(findings []security.Finding) []string {
	categories := security.Categories(findings)
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}
