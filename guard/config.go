package guard

import (
	"time"

	"github.com/vijaygvdr/VitaCheckLabs-BE/pkg/ratelimit"
)

// RateLimitConfig is the env-driven tuning surface for the limiter,
// loaded through pkg/config. The values shape the "default" rule; the
// other named profiles keep their standard windows.
type RateLimitConfig struct {
	Enabled           bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RequestsPerMinute int           `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" envDefault:"60"`
	RequestsPerHour   int           `env:"RATE_LIMIT_REQUESTS_PER_HOUR" envDefault:"1000"`
	RequestsPerDay    int           `env:"RATE_LIMIT_REQUESTS_PER_DAY" envDefault:"10000"`
	BurstSize         int           `env:"RATE_LIMIT_BURST_SIZE" envDefault:"10"`
	BurstWindow       time.Duration `env:"RATE_LIMIT_BURST_WINDOW" envDefault:"10s"`
	CleanupInterval   time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
}

// Rules expands the config into the named rule table consumed by
// ratelimit.NewSlidingWindow. The default rule is built from the
// configured values; strict, relaxed, auth and public keep their
// standard windows.
func (c RateLimitConfig) Rules() []ratelimit.RuleConfig {
	rules := ratelimit.DefaultRules()
	for i, rule := range rules {
		if rule.Name != "default" {
			continue
		}
		rules[i].Windows = []ratelimit.Window{
			ratelimit.Burst(c.BurstSize, c.BurstWindow),
			ratelimit.PerMinute(c.RequestsPerMinute),
			ratelimit.PerHour(c.RequestsPerHour),
			ratelimit.PerDay(c.RequestsPerDay),
		}
	}
	return rules
}
