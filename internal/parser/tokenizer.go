package parser

import "strings"

// ParseLine splits one CSV line into trimmed fields. A double quote toggles
// quoted mode, a doubled quote inside a quoted field yields one literal quote,
// commas split only outside quotes and carriage returns are always dropped.
// Unbalanced quotes are not an error.
func ParseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		case c == '\r':
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}

// SplitRows tokenizes a CSV document line by line. Lines that are blank after
// trimming are dropped; a leading UTF-8 byte order mark is ignored.
func SplitRows(text string) [][]string {
	text = strings.TrimPrefix(text, "\ufeff")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, ParseLine(line))
	}

	return rows
}
