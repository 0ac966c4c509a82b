package server

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// OriginChecker enforces the allowed-origin list on websocket upgrades and
// CORS responses. Origins are compared as lowercase scheme://host; "*" allows
// any origin. Requests without an Origin header come from non-browser
// clients and are allowed.
type OriginChecker struct {
	logger *zap.Logger

	allowAll bool
	allowed  map[string]struct{}
}

func NewOriginChecker(logger *zap.Logger, origins []string) *OriginChecker {
	checker := &OriginChecker{
		logger:  logger,
		allowed: make(map[string]struct{}, len(origins)),
	}

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}

		if trimmed == "*" {
			checker.allowAll = true
			continue
		}

		normalized, ok := normalizeOrigin(trimmed)
		if !ok {
			logger.Warn("ignoring invalid allowed origin", zap.String("origin", origin))
			continue
		}

		checker.allowed[normalized] = struct{}{}
	}

	return checker
}

func (c *OriginChecker) Check(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if c.Allowed(origin) {
		return true
	}

	c.logger.Warn("blocked request from disallowed origin", zap.String("origin", origin))

	return false
}

func (c *OriginChecker) Allowed(origin string) bool {
	if c.allowAll {
		return true
	}

	normalized, ok := normalizeOrigin(origin)
	if !ok {
		return false
	}

	_, exists := c.allowed[normalized]

	return exists
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", false
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}
