package source

import (
	"context"
	"fmt"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads ranges through the Google Sheets API, for spreadsheets
// that are shared with a service account instead of published.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
}

type SheetsConfig struct {
	CredentialsJSON []byte
	SpreadsheetID   string
}

func NewSheetsSource(ctx context.Context, cfg SheetsConfig) (*SheetsSource, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsSource{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

func (s *SheetsSource) Rows(ctx context.Context, sheet domain.Sheet) ([][]string, error) {
	if sheet.Range == "" {
		return nil, fmt.Errorf("sheet %s has no range", sheet.Type)
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheet.Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet range %s: %w", sheet.Range, err)
	}

	return padRows(cellRows(resp.Values)), nil
}
