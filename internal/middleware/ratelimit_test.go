package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

func rateCtx(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set(echo.HeaderXRealIP, "10.1.2.3")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(target)
	return c
}

func TestBuildRateKey(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl"}

	tests := []struct {
		strategy string
		want     string
	}{
		{"ip", "rl:ip:10.1.2.3"},
		{"route", "rl:route:POST /v1/reservations"},
		{"ip_route", "rl:ip:10.1.2.3:route:POST /v1/reservations"},
		// unknown strategies fall back to ip+route
		{"something_else", "rl:ip:10.1.2.3:route:POST /v1/reservations"},
		{"", "rl:ip:10.1.2.3:route:POST /v1/reservations"},
	}
	for _, tt := range tests {
		cfg.KeyStrategy = tt.strategy
		c := rateCtx("/v1/reservations")
		assert.Equal(t, tt.want, buildRateKey(cfg, c), "strategy %q", tt.strategy)
	}
}

// The limiter sits ahead of authentication in the chain, so two
// requests from the same address share a bucket regardless of who they
// authenticate as later.
func TestBuildRateKeyIgnoresIdentity(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	a := rateCtx("/v1/reservations")
	b := rateCtx("/v1/reservations")
	b.Set(CtxUserID, uint64(42))
	assert.Equal(t, buildRateKey(cfg, a), buildRateKey(cfg, b))
}

func TestNewTokenBucketDisabledPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	c := rateCtx("/v1/rooms")
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	assert.NoError(t, err)
	assert.True(t, called)
}
