package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samia-cardapio/cardapio-api/internal/domain"
)

var (
	ErrRowArity = errors.New("row field count does not match header")
	ErrNumeric  = errors.New("value is not numeric")
)

type RowArityPolicy int

const (
	// SkipRow drops rows whose field count differs from the header.
	SkipRow RowArityPolicy = iota
	FailRow
)

type NumericPolicy int

const (
	// DefaultZero turns unparsable currency values into 0. Limits always fall
	// back to unbounded.
	DefaultZero NumericPolicy = iota
	FailNumeric
)

type Options struct {
	OnRowArityMismatch    RowArityPolicy
	OnNumericParseFailure NumericPolicy
}

// DefaultOptions favours partial data: bad rows are skipped, bad numbers become 0.
var DefaultOptions = Options{
	OnRowArityMismatch:    SkipRow,
	OnNumericParseFailure: DefaultZero,
}

type kind int

const (
	kindString kind = iota
	kindCurrency
	kindLimit
	kindBool
)

var keyKinds = map[domain.Key]kind{
	domain.KeyBasePrice:     kindCurrency,
	domain.KeyPrice4Slices:  kindCurrency,
	domain.KeyPrice6Slices:  kindCurrency,
	domain.KeyPrice10Slices: kindCurrency,
	domain.KeyPromoPrice:    kindCurrency,
	domain.KeyDeliveryFee:   kindCurrency,
	domain.KeyPrice:         kindCurrency,

	domain.KeyLimit:           kindLimit,
	domain.KeyCategoryLimit:   kindLimit,
	domain.KeyIngredientLimit: kindLimit,

	domain.KeyIsPizza:        kindBool,
	domain.KeyAvailable:      kindBool,
	domain.KeyActive:         kindBool,
	domain.KeyIsCustomizable: kindBool,
	domain.KeyIsSingleChoice: kindBool,
	domain.KeyIsRequired:     kindBool,
}

const affirmative = "SIM"

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseCSV parses a whole CSV document of the given sheet type.
func ParseCSV(text string, sheet domain.SheetType, opts Options) ([]domain.Record, error) {
	return ParseRows(SplitRows(text), sheet, opts)
}

// ParseRows turns tokenized rows into records. The first row is the header.
// Fewer than two rows yield no records.
func ParseRows(rows [][]string, sheet domain.SheetType, opts Options) ([]domain.Record, error) {
	if len(rows) < 2 {
		return []domain.Record{}, nil
	}

	headers := NormalizeHeaders(rows[0], sheet)
	records := make([]domain.Record, 0, len(rows)-1)

	for i, row := range rows[1:] {
		if len(row) != len(headers) {
			if opts.OnRowArityMismatch == FailRow {
				return nil, fmt.Errorf("%s row %d: %w (got %d, want %d)", sheet, i+2, ErrRowArity, len(row), len(headers))
			}
			continue
		}

		record := make(domain.Record, len(headers))
		for j, key := range headers {
			v, err := coerce(key, row[j], opts)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", sheet, i+2, key, err)
			}
			record[key] = v
		}
		records = append(records, record)
	}

	return records, nil
}

func coerce(key domain.Key, raw string, opts Options) (any, error) {
	value := strings.TrimSpace(raw)

	switch keyKinds[key] {
	case kindCurrency:
		f, ok := parseCurrency(value)
		if !ok && opts.OnNumericParseFailure == FailNumeric {
			return nil, fmt.Errorf("%w: %q", ErrNumeric, value)
		}
		return f, nil
	case kindLimit:
		return parseLimit(value), nil
	case kindBool:
		return strings.ToUpper(value) == affirmative, nil
	default:
		return value, nil
	}
}

// parseCurrency reads the leading number after swapping the first comma for a
// decimal point, so "12,50" and "12,50 reais" both give 12.5.
func parseCurrency(s string) (float64, bool) {
	m := floatPrefix.FindString(strings.Replace(s, ",", ".", 1))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseLimit(s string) domain.Limit {
	m := intPrefix.FindString(s)
	if m == "" {
		return domain.Unbounded()
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return domain.Unbounded()
	}
	return domain.LimitOf(n)
}
