package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/mwhitfield/spendlog/internal/encoding"
	"github.com/mwhitfield/spendlog/internal/expense"
	"github.com/mwhitfield/spendlog/internal/money"
)

// CSVParser reads expense CSV exports. It locates a header row carrying at
// least "date" and "amount" columns (case-insensitive; "category" and
// "description" are optional), accepting both comma and semicolon delimited
// files in any common encoding.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// dateLayouts are tried in order for each date cell.
var dateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
}

func (p *CSVParser) Parse(r io.Reader) ([]expense.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	delim, err := sniffDelimiter(br)
	if err != nil {
		return nil, fmt.Errorf("sniff delimiter: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header with date and amount columns found")
	}

	return parseRows(cols, rows[headerIdx+1:])
}

// sniffDelimiter peeks at the first line and picks the more frequent of
// ';' and ','.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return 0, err
	}

	line := string(buf)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';', nil
	}

	return ',', nil
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

const (
	colDate        = "date"
	colAmount      = "amount"
	colCategory    = "category"
	colDescription = "description"
)

// detectHeader scans rows for one carrying the required columns.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols[colDate]

		_, hasAmount := cols[colAmount]
		if hasDate && hasAmount {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRows(cols colIndex, rows [][]string) ([]expense.CreateParams, error) {
	var params []expense.CreateParams

	for _, row := range rows {
		amountCell := cellValue(row, cols, colAmount)
		if amountCell == "" {
			// Footer or blank line.
			continue
		}

		cents, err := money.ParseSignedCents(amountCell)
		if err != nil || cents == 0 {
			continue
		}

		// Bank exports list expenses as negative amounts; plain expense
		// exports list them positive. Either way the expense is the
		// magnitude.
		if cents < 0 {
			cents = -cents
		}

		// A row with an unusable date is still an expense; it just cannot
		// be placed on a timeline.
		var date time.Time

		if s := cellValue(row, cols, colDate); s != "" {
			date = parseDate(s)
		}

		params = append(params, expense.CreateParams{
			Amount:      cents,
			Category:    cellValue(row, cols, colCategory),
			Description: cellValue(row, cols, colDescription),
			Date:        date,
		})
	}

	return params, nil
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
