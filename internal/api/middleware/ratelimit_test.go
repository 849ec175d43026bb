package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func doRequest(h http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/create-checkout-session", nil)
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

func TestRateLimiter_FixedWindow(t *testing.T) {
	mr, rdb := newRedis(t)
	rl := NewRateLimiter(rdb, 2, time.Minute, "test", false, logger.NewNop())
	h := rl.Middleware(okHandler)

	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1"))

	// другой клиент считается отдельно
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2"))

	// новое окно
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1"))

	ttl := mr.TTL("test:10.0.0.1")
	require.True(t, ttl > 0)
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	_, rdb := newRedis(t)
	rl := NewRateLimiter(rdb, 1, time.Minute, "test", false, logger.NewNop())
	h := rl.Middleware(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiter_RedisDown(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()

	open := NewRateLimiter(rdb, 1, time.Minute, "test", true, logger.NewNop()).Middleware(okHandler)
	assert.Equal(t, http.StatusOK, doRequest(open, "10.0.0.1"))

	closed := NewRateLimiter(rdb, 1, time.Minute, "test", false, logger.NewNop()).Middleware(okHandler)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(closed, "10.0.0.1"))
}
