package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/internal/domain"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/jitter"
	"github.com/content-os/commerce-sync/pkg/logger"
)

// fallbackStatuses — ответы токен-эндпоинта, после которых имеет смысл
// повторить выдачу с JSON-телом: реальные OAuth-серверы по-разному
// принимают client_credentials.
var fallbackStatuses = map[int]struct{}{
	http.StatusBadRequest:           {},
	http.StatusUnauthorized:         {},
	http.StatusForbidden:            {},
	http.StatusNotFound:             {},
	http.StatusUnsupportedMediaType: {},
}

// TokenSource выдаёт действующий токен Commerce API, перевыпуская его,
// когда кэшированный отсутствует или входит в окно запаса до истечения.
// Инвалидация по 401 — ответственность шлюза, не этого типа.
type TokenSource struct {
	client       *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	skew         time.Duration
	maxAttempts  int
	backoffBase  time.Duration
	backoffMax   time.Duration
	sleep        sleepFunc
	logger       logger.Logger

	mu   sync.Mutex
	cred *domain.Credential
	now  func() time.Time
}

func NewTokenSource(config *cfg.CommerceCfg, client *http.Client, logger logger.Logger) *TokenSource {
	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &TokenSource{
		client:       client,
		tokenURL:     config.TokenURL,
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		skew:         config.TokenSkew,
		maxAttempts:  maxAttempts,
		backoffBase:  config.BackoffBase,
		backoffMax:   config.BackoffMax,
		sleep:        sleepCtx,
		logger:       logger,
		now:          time.Now,
	}
}

// AccessToken возвращает действующий токен, при необходимости перевыпуская его.
// Выдача сериализована мьютексом: параллельные вызовы не устраивают гонку
// перевыпусков к рейт-лимитированному токен-эндпоинту.
func (t *TokenSource) AccessToken(ctx context.Context) (string, error) {
	const op = "TokenSource.AccessToken"

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cred.Expired(t.now(), t.skew) {
		return t.cred.Token, nil
	}

	cred, err := t.issueToken(ctx)
	if err != nil {
		return "", e.Wrap(op, err)
	}
	t.cred = cred

	t.logger.Debugf("Issued commerce token. expires_at: %s", cred.ExpiresAt.Format(time.RFC3339))

	return cred.Token, nil
}

// Invalidate сбрасывает кэшированный токен целиком.
func (t *TokenSource) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cred = nil
}

// issueToken выпускает токен по client_credentials с тем же бюджетом попыток,
// что и остальные исходящие запросы: транзиентный отказ токен-эндпоинта
// не роняет прогон. Прочие статусы фатальны сразу.
func (t *TokenSource) issueToken(ctx context.Context) (*domain.Credential, error) {
	var lastErr error

	for attempt := 0; attempt < t.maxAttempts; attempt++ {
		body, status, err := t.exchange(ctx)
		switch {
		case err != nil:
			// Сетевая ошибка или таймаут — повторяемая
			lastErr = err

		case status >= 200 && status < 300:
			return t.parseToken(body)

		default:
			if _, retriable := retriableStatuses[status]; !retriable {
				return nil, fmt.Errorf("%w: token endpoint returned %d", e.ErrAuth, status)
			}
			lastErr = fmt.Errorf("token endpoint returned %d", status)
		}

		if attempt == t.maxAttempts-1 {
			break
		}

		delay := jitter.ExponentialBackoff(t.backoffBase, t.backoffMax, attempt, jitter.DefaultJitter)
		t.logger.Warnf("Retrying token issue. attempt: %d, delay: %s, error: %v", attempt+1, delay, lastErr)

		if err := t.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("%w: %w", e.ErrAuth, err)
		}
	}

	return nil, fmt.Errorf("%w: %w", e.ErrAuth, lastErr)
}

// exchange — одна попытка выдачи: сначала form-encoded,
// при отказе совместимости — повтор с JSON-телом.
func (t *TokenSource) exchange(ctx context.Context) ([]byte, int, error) {
	body, status, err := t.postForm(ctx)
	if err != nil {
		return nil, 0, err
	}

	if _, fallback := fallbackStatuses[status]; fallback {
		return t.postJSON(ctx)
	}

	return body, status, nil
}

func (t *TokenSource) postForm(ctx context.Context) ([]byte, int, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", t.clientID)
	form.Set("client_secret", t.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return t.send(req)
}

func (t *TokenSource) postJSON(ctx context.Context) ([]byte, int, error) {
	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     t.clientID,
		"client_secret": t.clientSecret,
	})
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	return t.send(req)
}

func (t *TokenSource) send(req *http.Request) ([]byte, int, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

func (t *TokenSource) parseToken(body []byte) (*domain.Credential, error) {
	var parsed struct {
		AccessToken string  `json:"access_token"`
		ExpiresIn   float64 `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", e.ErrAuth, err)
	}

	if parsed.AccessToken == "" {
		return nil, e.ErrTokenMissing
	}

	expiresIn := time.Duration(parsed.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}

	return domain.NewCredential(parsed.AccessToken, t.now().Add(expiresIn)), nil
}
