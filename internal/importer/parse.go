// Package importer imports bank statements in CSV format.
//
// Imports happen in two phases. Preview parses and classifies the rows without
// writing anything, Commit parses the same input again and inserts the rows
// that are not duplicates of existing transactions.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column is a semantic CSV column.
type Column int

const (
	ColumnDate Column = iota
	ColumnPayee
	ColumnAmount
	ColumnOutflow
	ColumnInflow
	ColumnMemo
)

// synonyms maps lower case header names to columns.
var synonyms = map[string]Column{
	"date":             ColumnDate,
	"booking date":     ColumnDate,
	"transaction date": ColumnDate,
	"value date":       ColumnDate,
	"buchungstag":      ColumnDate,
	"datum":            ColumnDate,
	"payee":            ColumnPayee,
	"description":      ColumnPayee,
	"name":             ColumnPayee,
	"merchant":         ColumnPayee,
	"counterparty":     ColumnPayee,
	"empfänger":        ColumnPayee,
	"amount":           ColumnAmount,
	"value":            ColumnAmount,
	"betrag":           ColumnAmount,
	"withdrawal":       ColumnOutflow,
	"withdrawals":      ColumnOutflow,
	"debit":            ColumnOutflow,
	"outflow":          ColumnOutflow,
	"deposit":          ColumnInflow,
	"deposits":         ColumnInflow,
	"credit":           ColumnInflow,
	"inflow":           ColumnInflow,
	"memo":             ColumnMemo,
	"notes":            ColumnMemo,
	"note":             ColumnMemo,
	"reference":        ColumnMemo,
	"verwendungszweck": ColumnMemo,
}

// defaultLayout is used for files without header.
var defaultLayout = map[Column]int{
	ColumnDate:   0,
	ColumnPayee:  1,
	ColumnAmount: 2,
	ColumnMemo:   3,
}

var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2.1.2006",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

var (
	errAmountMissing = errors.New("no amount is set for the transaction")
	errAmountBoth    = errors.New("both outflow and inflow are set for the transaction")
	errAmountZero    = errors.New("the amount for a transaction must not be 0")
	errPayeeMissing  = errors.New("the payee is empty")
	errColumnMissing = errors.New("the row does not have enough columns")
	errNoAmountRow   = errors.New("the header has neither an amount column nor outflow and inflow columns")
)

// ParsedRow is a row of the input.
//
// Err is set if the row could not be parsed. All other fields except Line are
// only valid if Err is nil.
type ParsedRow struct {
	Line   int
	Date   time.Time
	Amount decimal.Decimal // Negative for outflows
	Payee  string
	Memo   string
	Err    error
}

// Parse parses CSV input.
//
// The delimiter is detected from the first line. If the first line contains known
// column names, it is used as header, otherwise the columns are expected to be
// Date, Payee, Amount and Memo. Amounts can either be in one signed column or in
// separate outflow and inflow columns.
//
// Rows that cannot be parsed are returned with Err set. An error is only returned
// if the input as a whole is unusable.
func Parse(r io.Reader) ([]ParsedRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read the CSV: %w", err)
	}

	// Strip a UTF-8 byte order mark
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows []ParsedRow
	var layout map[Column]int

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("could not read the CSV: %w", err)
			}

			rows = append(rows, ParsedRow{Line: parseErr.Line, Err: csvReadError(parseErr.Line, fmt.Errorf("could not read line in CSV: %w", parseErr.Err))})
			continue
		}

		line, _ := reader.FieldPos(0)

		if layout == nil {
			if header, ok := detectHeader(record); ok {
				layout = header
				_, hasAmount := layout[ColumnAmount]
				_, hasOutflow := layout[ColumnOutflow]
				_, hasInflow := layout[ColumnInflow]
				if !hasAmount && !hasOutflow && !hasInflow {
					return nil, csvReadError(line, errNoAmountRow)
				}
				continue
			}
			layout = defaultLayout
		}

		if blank(record) {
			continue
		}

		row := parseRecord(record, layout)
		row.Line = line
		if row.Err != nil {
			row.Err = csvReadError(line, row.Err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// csvReadError returns an error including the line of the input the error occurred in.
func csvReadError(line int, err error) error {
	return fmt.Errorf("error in line %d of the CSV: %w", line, err)
}

// delimiter returns the most frequent candidate delimiter in the first line.
func delimiter(data []byte) rune {
	first, _, _ := bytes.Cut(data, []byte("\n"))

	best := ','
	count := bytes.Count(first, []byte(","))
	for _, candidate := range []rune{';', '\t', '|'} {
		if c := bytes.Count(first, []byte(string(candidate))); c > count {
			best = candidate
			count = c
		}
	}

	return best
}

// detectHeader returns the column layout if the record is a header.
//
// A record is a header if it names a date column and at least one other known column.
func detectHeader(record []string) (map[Column]int, bool) {
	layout := make(map[Column]int)
	for i, cell := range record {
		column, ok := synonyms[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}

		if _, exists := layout[column]; !exists {
			layout[column] = i
		}
	}

	_, hasDate := layout[ColumnDate]
	return layout, hasDate && len(layout) > 1
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(record []string, layout map[Column]int, column Column) (string, bool) {
	i, ok := layout[column]
	if !ok || i >= len(record) {
		return "", false
	}

	return strings.TrimSpace(record[i]), true
}

func parseRecord(record []string, layout map[Column]int) ParsedRow {
	var row ParsedRow

	rawDate, ok := cell(record, layout, ColumnDate)
	if !ok {
		row.Err = errColumnMissing
		return row
	}

	date, err := ParseDate(rawDate)
	if err != nil {
		row.Err = err
		return row
	}
	row.Date = date

	row.Payee, _ = cell(record, layout, ColumnPayee)
	row.Memo, _ = cell(record, layout, ColumnMemo)
	if row.Payee == "" {
		row.Err = errPayeeMissing
		return row
	}

	row.Amount, row.Err = amount(record, layout)
	return row
}

// amount returns the signed amount of the record.
func amount(record []string, layout map[Column]int) (decimal.Decimal, error) {
	if raw, ok := cell(record, layout, ColumnAmount); ok {
		if raw == "" {
			return decimal.Zero, errAmountMissing
		}

		a, err := ParseAmount(raw)
		if err != nil {
			return decimal.Zero, err
		}

		if a.IsZero() {
			return decimal.Zero, errAmountZero
		}

		return a, nil
	}

	outflow, hasOutflow := cell(record, layout, ColumnOutflow)
	inflow, hasInflow := cell(record, layout, ColumnInflow)
	if !hasOutflow && !hasInflow {
		return decimal.Zero, errColumnMissing
	}

	if outflow != "" && inflow != "" {
		return decimal.Zero, errAmountBoth
	} else if outflow == "" && inflow == "" {
		return decimal.Zero, errAmountMissing
	}

	if outflow != "" {
		a, err := ParseAmount(outflow)
		if err != nil {
			return decimal.Zero, fmt.Errorf("outflow could not be parsed to a decimal: %w", err)
		}

		if a.IsZero() {
			return decimal.Zero, errAmountZero
		}

		return a.Abs().Neg(), nil
	}

	a, err := ParseAmount(inflow)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inflow could not be parsed to a decimal: %w", err)
	}

	if a.IsZero() {
		return decimal.Zero, errAmountZero
	}

	return a.Abs(), nil
}

// ParseDate parses a date in one of the supported formats and returns it at 00:00 UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			year, month, day := t.Date()
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse time: %q is not in a supported format", s)
}

var (
	currencySymbols = regexp.MustCompile(`[^0-9.,+\-()]`)
	decimalComma    = regexp.MustCompile(`,\d{1,2}$`)
)

// ParseAmount parses an amount as written by banks.
//
// It accepts currency symbols and codes, thousands separators, decimal commas,
// negative amounts in parentheses and trailing minus signs.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	cleaned := currencySymbols.ReplaceAllString(raw, "")

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.Trim(cleaned, "()")
	}

	if strings.HasSuffix(cleaned, "-") {
		negative = !negative
		cleaned = strings.TrimSuffix(cleaned, "-")
	} else if strings.HasPrefix(cleaned, "-") {
		negative = !negative
		cleaned = strings.TrimPrefix(cleaned, "-")
	}
	cleaned = strings.TrimPrefix(cleaned, "+")

	switch {
	// 1.234,56 or 12,5
	case decimalComma.MatchString(cleaned) && (strings.Contains(cleaned, ".") || strings.Count(cleaned, ",") == 1):
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")

	// 1,234.56 or 1,234
	default:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || cleaned == "" {
		return decimal.Zero, fmt.Errorf("%q is not a valid amount", raw)
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}
