package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/samia-cardapio/cardapio-api/internal/parser"
)

// defaultMaxSheetBytes bounds one CSV export.
const defaultMaxSheetBytes = 8 << 20

var ErrSheetTooLarge = errors.New("sheet export exceeds size limit")

// HTTPSource downloads published CSV exports.
type HTTPSource struct {
	client   *http.Client
	maxBytes int64
}

type HTTPConfig struct {
	Timeout  time.Duration
	MaxBytes int64
}

func NewHTTPSource(cfg HTTPConfig) *HTTPSource {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxSheetBytes
	}

	return &HTTPSource{
		client:   &http.Client{Timeout: cfg.Timeout},
		maxBytes: cfg.MaxBytes,
	}
}

// FetchCSV returns the body of url. Non-2xx responses are errors.
func (s *HTTPSource) FetchCSV(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	// one byte past the limit tells a full sheet from a cut one
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	if int64(len(body)) > s.maxBytes {
		return "", fmt.Errorf("failed to read %s: %w (%d bytes)", url, ErrSheetTooLarge, s.maxBytes)
	}

	return string(body), nil
}

func (s *HTTPSource) Rows(ctx context.Context, sheet domain.Sheet) ([][]string, error) {
	if sheet.URL == "" {
		return nil, fmt.Errorf("sheet %s has no url", sheet.Type)
	}

	text, err := s.FetchCSV(ctx, sheet.URL)
	if err != nil {
		return nil, err
	}

	return parser.SplitRows(text), nil
}
