package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads tabs of a workbook stored on disk or behind a URL. The
// workbook is opened on every call so edits show up without a restart.
type XLSXSource struct {
	location string
	client   *http.Client
}

func NewXLSXSource(location string, client *http.Client) *XLSXSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &XLSXSource{location: location, client: client}
}

func (s *XLSXSource) open(ctx context.Context) (*excelize.File, error) {
	if !strings.HasPrefix(s.location, "http://") && !strings.HasPrefix(s.location, "https://") {
		return excelize.OpenFile(s.location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return excelize.OpenReader(io.LimitReader(resp.Body, 32<<20))
}

// Rows reads the tab named by sheet.Range; an "!A1:Z" suffix is ignored.
func (s *XLSXSource) Rows(ctx context.Context, sheet domain.Sheet) ([][]string, error) {
	f, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.location, err)
	}
	defer f.Close()

	tab, _, _ := strings.Cut(sheet.Range, "!")
	if tab == "" {
		tab = string(sheet.Type)
	}

	raw, err := f.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook tab %s: %w", tab, err)
	}

	values := make([][]interface{}, len(raw))
	for i, row := range raw {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}

	return padRows(cellRows(values)), nil
}
