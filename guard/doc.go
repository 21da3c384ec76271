// Package guard ties the request-defense building blocks together: a
// declarative field schema driving attack-pattern detection and
// validation, a rate limiter consultation, and HTTP middleware that
// renders every failure as the canonical error envelope.
//
// The typical flow is one Guard per service wired with a
// ratelimit.Limiter and a rule table:
//
//	limiter, _ := ratelimit.NewSlidingWindow(store, ratelimit.DefaultRules()...)
//	g := guard.New(limiter, guard.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Use(g.Middleware("default", ratelimit.ByIP()))
//
// Handlers validate request payloads through a Schema:
//
//	schema := guard.Schema{Fields: []guard.Field{
//	    {Name: "email", Kind: guard.FieldEmail, Required: true},
//	    {Name: "password", Kind: guard.FieldPassword, Required: true},
//	}}
//	if _, err := g.Check(ctx, guard.Request{Schema: &schema, Fields: values, ...}); err != nil {
//	    apierror.WriteJSON(w, err)
//	    return
//	}
//
// Security findings on any non-rich field reject the whole request with
// a single SECURITY_ERROR; validation failures accumulate across fields
// into one VALIDATION_ERROR; only a request that passes both consumes
// rate-limit budget.
package guard
