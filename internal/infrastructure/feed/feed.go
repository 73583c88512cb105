package feed

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
)

// Loader читает партнёрский фид из локального файла или по URL.
// Поддерживаются CSV (в том числе экспорт из таблиц с BOM) и JSON.
type Loader struct {
	cfg    *cfg.PartnerCfg
	client *http.Client
	logger logger.Logger
}

func NewLoader(cfg *cfg.PartnerCfg, client *http.Client, logger logger.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// Load возвращает строки фида как карты "колонка -> значение".
func (l *Loader) Load(ctx context.Context) ([]map[string]any, error) {
	const op = "feed.Loader.Load"

	raw, err := l.read(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	rows, err := l.parse(raw)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	l.logger.Infof("Partner feed loaded. format: %s, rows: %d", l.cfg.FeedFormat, len(rows))

	return rows, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if l.cfg.FeedURL != "" {
		return l.fetch(ctx)
	}

	if l.cfg.FeedPath != "" {
		return os.ReadFile(l.cfg.FeedPath)
	}

	return nil, fmt.Errorf("neither feed url nor feed path configured")
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.FeedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed endpoint returned %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (l *Loader) parse(raw []byte) ([]map[string]any, error) {
	switch strings.ToLower(l.cfg.FeedFormat) {
	case "csv":
		return parseCSV(raw)
	case "json":
		return parseJSON(raw)
	default:
		return nil, fmt.Errorf("unsupported feed format %q", l.cfg.FeedFormat)
	}
}

// parseCSV разбирает CSV с заголовком. BOM из табличных экспортов срезается,
// заголовки нормализуются к нижнему регистру.
func parseCSV(raw []byte) ([]map[string]any, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, column := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(column))
	}

	rows := make([]map[string]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]any, len(header))
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseJSON принимает массив объектов либо объект с полем rows.
func parseJSON(raw []byte) ([]map[string]any, error) {
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err == nil {
		return rows, nil
	}

	var wrapped struct {
		Rows []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("feed is neither an array nor an object with rows: %w", err)
	}

	return wrapped.Rows, nil
}
