package commerce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatewayFixture собирает шлюз поверх httptest-сервера: токен-эндпоинт живёт
// на том же сервере, задержки между попытками записываются вместо ожидания.
type gatewayFixture struct {
	gateway *Gateway
	sleeps  []time.Duration
}

func newGatewayFixture(t *testing.T, server *httptest.Server, maxAttempts int) *gatewayFixture {
	t.Helper()

	config := &cfg.CommerceCfg{
		TokenURL:    server.URL + "/oauth/token",
		BaseURL:     server.URL,
		MaxAttempts: maxAttempts,
		BackoffBase: time.Millisecond,
		BackoffMax:  time.Millisecond,
	}

	f := &gatewayFixture{}
	tokens := NewTokenSource(config, server.Client(), testLogger{})
	f.gateway = NewGateway(config, server.Client(), tokens, testLogger{})
	f.gateway.sleep = func(_ context.Context, d time.Duration) error {
		f.sleeps = append(f.sleeps, d)
		return nil
	}

	return f
}

// tokenHandler выдаёт последовательные токены t1, t2, ...
func tokenHandler(issued *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		n := issued.Add(1)
		w.Write([]byte(`{"access_token":"t` + string(rune('0'+n)) + `","expires_in":600}`))
	}
}

func TestGateway_RetriableThenSuccess(t *testing.T) {
	var issued, calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(&issued))
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newGatewayFixture(t, server, 3)

	body, err := f.gateway.Request(context.Background(), http.MethodGet, "/products", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Len(t, f.sleeps, 1)
}

func TestGateway_NonRetriable4xxFailsFast(t *testing.T) {
	var issued, calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(&issued))
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newGatewayFixture(t, server, 3)

	_, err := f.gateway.Request(context.Background(), http.MethodGet, "/products", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "прочие 4xx не тратят бюджет попыток")
	assert.Empty(t, f.sleeps)
}

func TestGateway_429ConsumesExactlyOneDelay(t *testing.T) {
	var issued, calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(&issued))
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newGatewayFixture(t, server, 3)

	_, err := f.gateway.Request(context.Background(), http.MethodGet, "/products", nil)
	require.NoError(t, err)

	// Retry-After: 0 — ровно одна инжектированная задержка нулевой длины
	require.Len(t, f.sleeps, 1)
	assert.Equal(t, time.Duration(0), f.sleeps[0])
}

func TestGateway_429WithoutHeaderUsesBackoff(t *testing.T) {
	var issued, calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(&issued))
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newGatewayFixture(t, server, 3)

	_, err := f.gateway.Request(context.Background(), http.MethodGet, "/products", nil)
	require.NoError(t, err)
	require.Len(t, f.sleeps, 1)
	assert.Greater(t, f.sleeps[0], time.Duration(0))
}

func TestGateway_401InvalidatesAndRetriesOnce(t *testing.T) {
	var issued, calls atomic.Int32
	var seenTokens []string

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(&issued))
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		seenTokens = append(seenTokens, r.Header.Get("Authorization"))
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newGatewayFixture(t, server, 3)

	_, err := f.gateway.Request(context.Background(), http.MethodGet, "/products", nil)
	require.NoError(t, err)

	// После 401 токен сброшен и повтор ушёл с новым
	require.Len(t, seenTokens, 2)
	assert.Equal(t, "Bearer t1", seenTokens[0])
	assert.Equal(t, "Bearer t2", seenTokens[1])
	assert.Empty(t, f.sleeps, "перевыпуск токена не ждёт backoff")
}

func TestGateway_Repeated401IsAuthError(t *testing.T) {
	var issued atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(&issued))
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newGatewayFixture(t, server, 3)

	_, err := f.gateway.Request(context.Background(), http.MethodGet, "/products", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrAuth)
}

func TestGateway_BudgetExhausted(t *testing.T) {
	var issued, calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(&issued))
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newGatewayFixture(t, server, 3)

	_, err := f.gateway.Request(context.Background(), http.MethodGet, "/products", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrRetryBudgetExhausted)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, f.sleeps, 2, "после последней попытки задержки нет")
}
