package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is a token bucket budget. A Limit of zero or less means unlimited.
type Rule struct {
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit when zero
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Default applies to routes without an entry in Routes and to requests
	// that match no route at all.
	Default         Rule
	Routes          map[string]Rule // keyed by ServeMux pattern, e.g. "POST /tailor"
	CleanupInterval time.Duration
	Exempt          map[string]bool // client IPs that are never limited
	Blocked         map[string]bool // client IPs that are always refused
}

// DefaultRoutes returns the per-route budgets for the API.
func DefaultRoutes() map[string]Rule {
	return map[string]Rule{
		// may fetch job pages or render PDFs
		"POST /tailor":  {Limit: 30, Window: time.Minute, Burst: 5},
		"POST /analyze": {Limit: 30, Window: time.Minute, Burst: 5},

		"POST /validate": {Limit: 120, Window: time.Minute, Burst: 20},
		"POST /format":   {Limit: 120, Window: time.Minute, Burst: 20},

		"GET /health": {},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables on top of DefaultRoutes.
// RATE_LIMIT_PER_MINUTE sets the default budget for reads such as /runs.
func LoadConfig() *Config {
	if enabled, err := strconv.ParseBool(os.Getenv("RATE_LIMIT_ENABLED")); err == nil && !enabled {
		return &Config{Enabled: false}
	}

	perMinute := 600
	if n, err := strconv.Atoi(os.Getenv("RATE_LIMIT_PER_MINUTE")); err == nil && n >= 0 {
		perMinute = n
	}
	cleanup := 5 * time.Minute
	if d, err := time.ParseDuration(os.Getenv("RATE_LIMIT_CLEANUP_INTERVAL")); err == nil {
		cleanup = d
	}

	return &Config{
		Enabled:         true,
		Default:         Rule{Limit: perMinute, Window: time.Minute},
		Routes:          DefaultRoutes(),
		CleanupInterval: cleanup,
		Exempt:          clientSet(os.Getenv("RATE_LIMIT_EXEMPT")),
		Blocked:         clientSet(os.Getenv("RATE_LIMIT_BLOCKED")),
	}
}

// clientSet parses a comma-separated list of client IPs.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
