package commerce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/jitter"
	"github.com/content-os/commerce-sync/pkg/logger"
	"golang.org/x/time/rate"
)

// retriableStatuses — статусы, после которых запрос имеет смысл повторить.
// Прочие 4xx фатальны сразу, без расхода бюджета попыток.
var retriableStatuses = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusConflict:            {},
	http.StatusTooEarly:            {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// sleepFunc — задержка между попытками. Подменяется в тестах,
// чтобы не тратить реальное время.
type sleepFunc func(ctx context.Context, d time.Duration) error

// Gateway — исходящие запросы к Commerce API: bearer-авторизация,
// классификация ошибок, экспоненциальный backoff с джиттером,
// учёт Retry-After и перевыпуск токена по 401.
type Gateway struct {
	client      *http.Client
	tokens      *TokenSource
	baseURL     string
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	limiter     *rate.Limiter
	sleep       sleepFunc
	logger      logger.Logger
}

func NewGateway(config *cfg.CommerceCfg, client *http.Client, tokens *TokenSource, logger logger.Logger) *Gateway {
	var limiter *rate.Limiter
	if config.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimitRPS), 1)
	}

	return &Gateway{
		client:      client,
		tokens:      tokens,
		baseURL:     config.BaseURL,
		maxAttempts: config.MaxAttempts,
		backoffBase: config.BackoffBase,
		backoffMax:  config.BackoffMax,
		limiter:     limiter,
		sleep:       sleepCtx,
		logger:      logger,
	}
}

// Request выполняет запрос с бюджетом попыток и возвращает тело 2xx-ответа.
// Ошибка выдачи токена фатальна: без учётных данных повторы бессмысленны.
func (g *Gateway) Request(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	const op = "Gateway.Request"

	var (
		lastErr   error
		refreshed bool
	)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return nil, e.Wrap(op, err)
			}
		}

		token, err := g.tokens.AccessToken(ctx)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		body, status, retryAfter, err := g.do(ctx, method, path, query, token)
		switch {
		case err != nil:
			// Сетевая ошибка или таймаут — повторяемая
			lastErr = err

		case status >= 200 && status < 300:
			return body, nil

		case status == http.StatusUnauthorized:
			// Протухший токен: сброс и повтор, но не более одного раза за бюджет
			if refreshed {
				return nil, e.Wrap(op, fmt.Errorf("%w: token rejected twice", e.ErrAuth))
			}
			refreshed = true
			lastErr = fmt.Errorf("%s %s returned 401", method, path)
			g.tokens.Invalidate()
			continue

		default:
			if _, retriable := retriableStatuses[status]; !retriable {
				return nil, e.Wrap(op, fmt.Errorf("%s %s returned %d", method, path, status))
			}
			lastErr = fmt.Errorf("%s %s returned %d", method, path, status)
		}

		if attempt == g.maxAttempts-1 {
			break
		}

		delay := g.retryDelay(status, retryAfter, attempt)
		g.logger.Warnf("Retrying commerce request. method: %s, path: %s, attempt: %d, delay: %s, error: %v",
			method, path, attempt+1, delay, lastErr)

		if err := g.sleep(ctx, delay); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrRetryBudgetExhausted, lastErr))
}

// retryDelay — Retry-After для 429, иначе экспоненциальный backoff с джиттером.
func (g *Gateway) retryDelay(status int, retryAfter time.Duration, attempt int) time.Duration {
	if status == http.StatusTooManyRequests && retryAfter >= 0 {
		return retryAfter
	}

	return jitter.ExponentialBackoff(g.backoffBase, g.backoffMax, attempt, jitter.DefaultJitter)
}

func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, token string) ([]byte, int, time.Duration, error) {
	reqURL := g.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, 0, -1, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, 0, -1, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, -1, err
	}

	return body, resp.StatusCode, parseRetryAfter(resp.Header), nil
}

// parseRetryAfter возвращает задержку из заголовка Retry-After
// либо -1, если заголовок отсутствует или нечитаем.
func parseRetryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return -1
	}

	seconds, err := strconv.Atoi(v)
	if err != nil || seconds < 0 {
		return -1
	}

	return time.Duration(seconds) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
