package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
)

const (
	listPath   = "/products"
	detailPath = "/products/%s"
)

// Ключи, под которыми разные версии API отдают список товаров и идентификатор.
var (
	itemsKeys = []string{"products", "items", "content"}
	idKeys    = []string{"id", "product_id", "productNo"}
)

// Client — загрузка каталога собственного магазина через Commerce API:
// обход пагинации и параллельная выгрузка деталей.
type Client struct {
	gateway     *Gateway
	pageSize    int
	concurrency int
	logger      logger.Logger
}

func NewClient(config *cfg.CommerceCfg, gateway *Gateway, logger logger.Logger) *Client {
	return &Client{
		gateway:     gateway,
		pageSize:    config.PageSize,
		concurrency: config.Concurrency,
		logger:      logger,
	}
}

// FetchProductIDs выгружает идентификаторы всех товаров, следуя сигналам
// продолжения в порядке приоритета: next_cursor -> has_more -> total_pages ->
// одна страница. Явный контракт завершения защищает от бесконечного обхода
// независимо от того, какой вариант пагинации реализует апстрим.
func (c *Client) FetchProductIDs(ctx context.Context) ([]string, error) {
	const op = "Client.FetchProductIDs"

	var (
		ids    []string
		cursor string
		page   = 1
	)

	for {
		query := url.Values{}
		query.Set("page_size", strconv.Itoa(c.pageSize))
		if cursor != "" {
			query.Set("cursor", cursor)
		} else {
			query.Set("page", strconv.Itoa(page))
		}

		body, err := c.gateway.Request(ctx, http.MethodGet, listPath, query)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		var parsed map[string]any
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, e.Wrap(op, err)
		}

		items := extractItems(parsed)
		for _, item := range items {
			if id := firstString(item, idKeys); id != "" {
				ids = append(ids, id)
			}
		}

		// Пустая страница завершает обход независимо от сигналов продолжения
		if len(items) == 0 {
			break
		}

		if next, ok := parsed["next_cursor"].(string); ok && next != "" {
			cursor = next
			continue
		}

		if hasMore, ok := parsed["has_more"].(bool); ok {
			if !hasMore {
				break
			}
			page++
			continue
		}

		if total, ok := asInt(parsed["total_pages"]); ok {
			if page >= total {
				break
			}
			page++
			continue
		}

		break
	}

	c.logger.Infof("Fetched product id list. count: %d", len(ids))

	return ids, nil
}

// FetchDetails выгружает детали товаров пулом воркеров, ограниченным
// min(настроенная конкурентность, число товаров). Сбой одного товара
// не прерывает остальные: он логируется и учитывается в Errors.
func (c *Client) FetchDetails(ctx context.Context, ids []string) (*usecase.FetchDetailsRes, error) {
	const op = "Client.FetchDetails"

	if len(ids) == 0 {
		return &usecase.FetchDetailsRes{}, nil
	}

	workers := c.concurrency
	if len(ids) < workers {
		workers = len(ids)
	}

	detailCh := make(chan usecase.RawDetail, len(ids))
	errCh := make(chan error, len(ids))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			body, err := c.gateway.Request(ctx, http.MethodGet, fmt.Sprintf(detailPath, id), nil)
			if err != nil {
				c.logger.Warnf(
					"Failed to fetch product detail, check API auth, rate limits or payload. id: %s, error: %v",
					id, err,
				)
				errCh <- err
				return
			}

			detailCh <- usecase.NewRawDetail(id, body)
		}()
	}

	go func() {
		wg.Wait()
		close(detailCh)
		close(errCh)
	}()

	res := &usecase.FetchDetailsRes{Details: make([]usecase.RawDetail, 0, len(ids))}
	for completed := 0; completed < len(ids); {
		select {
		case detail, ok := <-detailCh:
			if ok {
				res.Details = append(res.Details, detail)
				completed++
			}
		case _, ok := <-errCh:
			if ok {
				res.Errors++
				completed++
			}
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return res, nil
}

// extractItems находит список товаров под одним из известных ключей ответа.
func extractItems(parsed map[string]any) []map[string]any {
	for _, key := range itemsKeys {
		raw, ok := parsed[key].([]any)
		if !ok {
			continue
		}

		items := make([]map[string]any, 0, len(raw))
		for _, entry := range raw {
			if item, ok := entry.(map[string]any); ok {
				items = append(items, item)
			}
		}
		return items
	}

	return nil
}

// firstString возвращает первое непустое строковое представление значения
// по списку ключей-кандидатов.
func firstString(item map[string]any, keys []string) string {
	for _, key := range keys {
		switch v := item[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	return ""
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}

	return 0, false
}
