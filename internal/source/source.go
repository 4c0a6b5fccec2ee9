// Package source fetches the raw rows of a menu sheet.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

// Source returns the rows of one sheet, header first.
type Source interface {
	Rows(ctx context.Context, sheet domain.Sheet) ([][]string, error)
}

// ExportURL is the CSV export link of one tab of a published spreadsheet.
func ExportURL(spreadsheetID, gid string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", spreadsheetID, gid)
}

// cellRows stringifies API cell values and drops rows with no content.
func cellRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, raw := range values {
		row := make([]string, len(raw))
		blank := true
		for i, cell := range raw {
			row[i] = strings.TrimSpace(fmt.Sprintf("%v", cell))
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// padRows widens short rows to the header width. Both the Sheets API and
// excelize trim trailing empty cells, which would otherwise trip the row
// arity check.
func padRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) < width {
			rows[i] = append(row, make([]string, width-len(row))...)
		}
	}
	return rows
}
