package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the limiter. EndpointConfigs are consulted in order
// and the first matching rule wins, so narrower paths must precede the
// prefix rules that would otherwise shadow them.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// EndpointConfig assigns one route to a tier with its own budget. Path
// matches exactly, or as a prefix when it ends in "/". Burst is the
// bucket capacity; zero means the full limit.
type EndpointConfig struct {
	Tier   string
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// match resolves a request path and method to its endpoint rule. Health
// checks are never limited; unmatched routes get the default budget.
func (c *Config) match(path, method string) EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		return EndpointConfig{Tier: TierHealth, Path: path, Method: method}
	}
	for _, rule := range c.EndpointConfigs {
		if rule.Method != method {
			continue
		}
		if rule.Path == path || (strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path)) {
			return rule
		}
	}
	return EndpointConfig{
		Tier:   TierDefault,
		Path:   "*",
		Method: method,
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
	}
}

// LoadConfig builds the limiter configuration from the environment.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       envAddrSet("RATE_LIMIT_WHITELIST"),
		Blacklist:       envAddrSet("RATE_LIMIT_BLACKLIST"),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the portal's endpoint tier assignments.
// POST /api/jobs/ covers /api/jobs/{id}/apply, which runs the matching
// pipeline and so belongs on the model tier.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model tier: every request may cost a generative call.
		{Tier: TierModel, Path: "/api/resume-analyze", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Tier: TierModel, Path: "/api/jobs/from-url", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Tier: TierModel, Path: "/api/jobs/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Auth tier: credential endpoints.
		{Tier: TierAuth, Path: "/api/auth/register", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Tier: TierAuth, Path: "/api/auth/login", Method: "POST", Limit: 30, Window: 15 * time.Minute, Burst: 10},
		{Tier: TierAuth, Path: "/api/user/password", Method: "PUT", Limit: 10, Window: time.Hour, Burst: 3},

		// Write tier: job, profile and messaging writes.
		{Tier: TierWrite, Path: "/api/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Tier: TierWrite, Path: "/api/jobs/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Tier: TierWrite, Path: "/api/jobs/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Tier: TierWrite, Path: "/api/user", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Tier: TierWrite, Path: "/api/user/resume", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Tier: TierWrite, Path: "/api/conversations", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Tier: TierWrite, Path: "/api/conversations/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 20},

		// Reads fall through to the default budget.
	}
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

// envAddrSet parses a comma-separated list of client addresses.
func envAddrSet(key string) map[string]bool {
	set := make(map[string]bool)
	for _, addr := range strings.Split(os.Getenv(key), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			set[addr] = true
		}
	}
	return set
}
