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

type testLogger struct{}

func (testLogger) Debugf(_ string, _ ...any)          {}
func (testLogger) Infof(_ string, _ ...any)           {}
func (testLogger) Warnf(_ string, _ ...any)           {}
func (testLogger) Errorf(_ error, _ string, _ ...any) {}

func tokenSourceFor(t *testing.T, server *httptest.Server, skew time.Duration) *TokenSource {
	t.Helper()

	config := &cfg.CommerceCfg{
		TokenURL:     server.URL + "/oauth/token",
		ClientID:     "client",
		ClientSecret: "secret",
		TokenSkew:    skew,
		MaxAttempts:  3,
		BackoffBase:  time.Millisecond,
		BackoffMax:   time.Millisecond,
	}

	tokens := NewTokenSource(config, server.Client(), testLogger{})
	tokens.sleep = func(_ context.Context, _ time.Duration) error { return nil }

	return tokens
}

func TestTokenSource_CachesUntilSkew(t *testing.T) {
	var issued atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		issued.Add(1)
		w.Write([]byte(`{"access_token":"tok","expires_in":600}`))
	}))
	defer server.Close()

	tokens := tokenSourceFor(t, server, 2*time.Minute)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }

	token, err := tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	// Повторный вызов в пределах срока — из кэша
	_, err = tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), issued.Load())

	// Вход в окно skew (за 2 минуты до истечения) вызывает перевыпуск
	now = now.Add(9 * time.Minute)
	_, err = tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), issued.Load())
}

func TestTokenSource_FormToJSONFallback(t *testing.T) {
	var contentTypes []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		contentTypes = append(contentTypes, ct)

		// Эндпоинт принимает только JSON-тело
		if ct != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		w.Write([]byte(`{"access_token":"json-tok","expires_in":600}`))
	}))
	defer server.Close()

	tokens := tokenSourceFor(t, server, 0)

	token, err := tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "json-tok", token)

	require.Len(t, contentTypes, 2)
	assert.Equal(t, "application/x-www-form-urlencoded", contentTypes[0])
	assert.Equal(t, "application/json", contentTypes[1])
}

func TestTokenSource_MissingTokenField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"expires_in":600}`))
	}))
	defer server.Close()

	tokens := tokenSourceFor(t, server, 0)

	_, err := tokens.AccessToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrTokenMissing)
}

func TestTokenSource_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Первый ответ — транзиентный отказ, второй — действующий токен
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"access_token":"tok","expires_in":600}`))
	}))
	defer server.Close()

	tokens := tokenSourceFor(t, server, 0)

	token, err := tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTokenSource_PersistentFailureIsAuthError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	tokens := tokenSourceFor(t, server, 0)

	_, err := tokens.AccessToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrAuth)
	// Бюджет попыток исчерпан целиком
	assert.Equal(t, int32(3), calls.Load())
}

func TestTokenSource_FatalStatusSkipsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		// 400 и для form-, и для JSON-тела: учётные данные отвергнуты
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	tokens := tokenSourceFor(t, server, 0)

	_, err := tokens.AccessToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrAuth)
	// Одна попытка: form плюс JSON-фолбэк, без расхода бюджета
	assert.Equal(t, int32(2), calls.Load())
}

func TestTokenSource_Invalidate(t *testing.T) {
	var issued atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		issued.Add(1)
		w.Write([]byte(`{"access_token":"tok","expires_in":600}`))
	}))
	defer server.Close()

	tokens := tokenSourceFor(t, server, 0)

	_, err := tokens.AccessToken(context.Background())
	require.NoError(t, err)

	tokens.Invalidate()

	_, err = tokens.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), issued.Load())
}
