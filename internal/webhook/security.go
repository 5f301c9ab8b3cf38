package webhook

import (
	"context"
	"crypto/hmac"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
	"google.golang.org/api/idtoken"
)

// DefaultMaxBodyBytes caps webhook request bodies. Conversational payloads
// are small; anything near this size is not a chat message.
const DefaultMaxBodyBytes = 1 << 20 // 1 MiB

// chatIssuer is the service account Google Chat signs its tokens with.
const chatIssuer = "chat@system.gserviceaccount.com"

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter

	// validateToken is swapped in tests; defaults to idtoken.Validate.
	validateToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &SecurityValidator{
		config:        config,
		rateLimiter:   newRateLimiter(config.RateLimitPerMin),
		validateToken: idtoken.Validate,
	}
}

// SetTokenValidator overrides Google ID token verification (useful for testing).
func (v *SecurityValidator) SetTokenValidator(fn func(ctx context.Context, token, audience string) (*idtoken.Payload, error)) {
	v.validateToken = fn
}

// ValidateTelegramToken verifies the secret token Telegram echoes back on
// every webhook call. No secret configured means the check is disabled.
func (v *SecurityValidator) ValidateTelegramToken(token string) error {
	if v.config.TelegramSecret == "" {
		return nil
	}

	// Constant-time comparison; the header is attacker-controlled.
	if !hmac.Equal([]byte(token), []byte(v.config.TelegramSecret)) {
		return fmt.Errorf("telegram secret token mismatch")
	}
	return nil
}

// ValidateGoogleChatToken verifies the bearer token Google Chat sends in the
// Authorization header: a Google-signed JWT whose audience is our project
// number and whose issuer is the Chat service account. No audience
// configured means the check is disabled.
func (v *SecurityValidator) ValidateGoogleChatToken(ctx context.Context, authHeader string) error {
	if v.config.GoogleChatAudience == "" {
		return nil
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		return fmt.Errorf("missing bearer token")
	}

	payload, err := v.validateToken(ctx, token, v.config.GoogleChatAudience)
	if err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	if email, _ := payload.Claims["email"].(string); email != chatIssuer {
		return fmt.Errorf("unexpected token issuer %q", email)
	}
	return nil
}

// ValidateIPAddress checks if request IP is whitelisted
func (v *SecurityValidator) ValidateIPAddress(r *http.Request) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	// Extract IP from request
	ip := extractIP(r)

	// Check against whitelist
	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		// Check CIDR range
		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(net.ParseIP(ip)) {
				return nil
			}
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}

// CheckRateLimit enforces rate limiting
func (v *SecurityValidator) CheckRateLimit(source string) error {
	return v.rateLimiter.Allow(source)
}

// LimitBody caps the request body so a hostile payload cannot exhaust
// memory. Reads past the cap fail with http.MaxBytesError.
func (v *SecurityValidator) LimitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, v.config.MaxBodyBytes)
}

// extractIP extracts client IP from request
func extractIP(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fallback to RemoteAddr
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}

// rateLimiter is a production-grade rate limiter with auto-cleanup
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique sources
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	if rl.rate <= 0 {
		return nil // Rate limiting disabled
	}

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}
