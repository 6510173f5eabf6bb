package importer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/envelope-zero/budget-engine/pkg/money"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

type Status string

const (
	StatusNew       Status = "NEW"
	StatusDuplicate Status = "DUPLICATE"
	StatusInvalid   Status = "INVALID"
)

// Importer imports CSV files into accounts of a budget in a single currency.
//
// All methods expect db to be a transaction that the caller commits or rolls back.
type Importer struct {
	Currency currency.Unit
}

func New(unit currency.Unit) Importer {
	return Importer{Currency: unit}
}

// Row is the classification of one row of the input.
type Row struct {
	Line        int         `json:"line" example:"2"` // Line in the input, starting at 1
	Date        time.Time   `json:"date" example:"2024-05-13T00:00:00Z"`
	Amount      money.Money `json:"amount"`
	Payee       string      `json:"payee" example:"Farmers market"`
	Memo        string      `json:"memo" example:"Apples"`
	Fingerprint string      `json:"fingerprint"`
	Status      Status      `json:"status" example:"NEW"`
	Reason      string      `json:"reason,omitempty" example:"error in line 3 of the CSV: the payee is empty"` // Only set for invalid rows
	EnvelopeID  *uuid.UUID  `json:"envelopeId"`                                                             // Envelope set by the first matching match rule
	MatchRuleID *uuid.UUID  `json:"matchRuleId"`
	DuplicateOf []uuid.UUID `json:"duplicateOf"` // IDs of existing transactions with the same fingerprint
}

// Preview is the result of a dry run of an import.
type Preview struct {
	AccountID uuid.UUID `json:"accountId"`
	Rows      []Row     `json:"rows"`
	New       int       `json:"new"`
	Duplicate int       `json:"duplicate"`
	Invalid   int       `json:"invalid"`
}

// Preview parses the input and classifies every row. It does not write to the database.
func (i Importer) Preview(db *gorm.DB, accountID uuid.UUID, r io.Reader) (Preview, error) {
	rows, err := i.rows(db, accountID, r, nil)
	if err != nil {
		return Preview{}, err
	}

	preview := Preview{AccountID: accountID, Rows: rows}
	for _, row := range rows {
		switch row.Status {
		case StatusNew:
			preview.New++
		case StatusDuplicate:
			preview.Duplicate++
		case StatusInvalid:
			preview.Invalid++
		}
	}

	return preview, nil
}

// rows parses the input, classifies all rows and returns the rows for the lines.
// A nil lines slice selects all rows.
func (i Importer) rows(db *gorm.DB, accountID uuid.UUID, r io.Reader, lines []int) ([]Row, error) {
	if r == nil {
		return nil, ErrInputMissing
	}

	_, err := ledger.New(i.Currency).Account(db, accountID)
	if err != nil {
		return nil, err
	}

	parsed, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	rows := make([]Row, 0, len(parsed))
	for _, p := range parsed {
		row := Row{Line: p.Line, Status: StatusNew, DuplicateOf: []uuid.UUID{}}
		if p.Err != nil {
			row.Status = StatusInvalid
			row.Reason = p.Err.Error()
			rows = append(rows, row)
			continue
		}

		row.Date = p.Date
		row.Amount = money.New(p.Amount, i.Currency)
		row.Payee = p.Payee
		row.Memo = p.Memo
		row.Fingerprint = models.Fingerprint(row.Date, row.Amount.Amount(), row.Payee, row.Memo)

		if row.Amount.IsZero() {
			row.Status = StatusInvalid
			row.Reason = csvReadError(p.Line, errAmountZero).Error()
		}

		rows = append(rows, row)
	}

	err = i.closed(db, rows)
	if err != nil {
		return nil, err
	}

	err = duplicates(db, accountID, rows)
	if err != nil {
		return nil, err
	}

	err = match(db, rows)
	if err != nil {
		return nil, err
	}

	return selectLines(rows, lines), nil
}

// selectLines returns the rows at the lines. Rows are classified before they are
// selected so that a row keeps the status the preview of the whole input gave it.
func selectLines(rows []Row, lines []int) []Row {
	if lines == nil {
		return rows
	}

	selected := make(map[int]bool, len(lines))
	for _, line := range lines {
		selected[line] = true
	}

	filtered := make([]Row, 0, len(lines))
	for _, row := range rows {
		if selected[row.Line] {
			filtered = append(filtered, row)
		}
	}

	return filtered
}

// closed marks rows dated in closed periods as invalid.
func (i Importer) closed(db *gorm.DB, rows []Row) error {
	checked := make(map[string]error)
	for idx := range rows {
		row := &rows[idx]
		if row.Status != StatusNew {
			continue
		}

		month := types.MonthOf(row.Date)
		err, ok := checked[month.String()]
		if !ok {
			err = models.CheckPeriodOpen(db, month)
			checked[month.String()] = err
		}

		if errors.Is(err, models.ErrPeriodClosed) {
			row.Status = StatusInvalid
			row.Reason = csvReadError(row.Line, err).Error()
		} else if err != nil {
			return err
		}
	}

	return nil
}

// duplicates classifies rows whose fingerprint is already used by transactions
// on the account.
//
// Rows are matched by occurrence: if the input contains a fingerprint n times
// and the account already has k transactions with it, the first k rows are
// duplicates and the remaining n-k rows are new.
func duplicates(db *gorm.DB, accountID uuid.UUID, rows []Row) error {
	fingerprints := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Status == StatusNew {
			fingerprints = append(fingerprints, row.Fingerprint)
		}
	}

	if len(fingerprints) == 0 {
		return nil
	}

	var existing []models.Transaction
	err := db.
		Select("id", "fingerprint").
		Where("account_id = ? AND fingerprint IN ?", accountID, fingerprints).
		Order("date ASC, created_at ASC").
		Find(&existing).Error
	if err != nil {
		return err
	}

	ids := make(map[string][]uuid.UUID)
	for _, t := range existing {
		ids[t.Fingerprint] = append(ids[t.Fingerprint], t.ID)
	}

	seen := make(map[string]int)
	for idx := range rows {
		row := &rows[idx]
		if row.Status != StatusNew {
			continue
		}

		seen[row.Fingerprint]++
		if seen[row.Fingerprint] <= len(ids[row.Fingerprint]) {
			row.Status = StatusDuplicate
			row.DuplicateOf = ids[row.Fingerprint]
		}
	}

	return nil
}

// match sets the envelope of the first match rule whose pattern matches the payee.
// Rules for archived envelopes are ignored.
func match(db *gorm.DB, rows []Row) error {
	rules, err := models.OrderedMatchRules(db)
	if err != nil {
		return err
	}

	if len(rules) == 0 {
		return nil
	}

	var archived []uuid.UUID
	err = db.Model(&models.Envelope{}).Where("archived = ?", true).Pluck("id", &archived).Error
	if err != nil {
		return err
	}

	active := rules[:0]
	for _, rule := range rules {
		if !slices.Contains(archived, rule.EnvelopeID) {
			active = append(active, rule)
		}
	}

	for idx := range rows {
		row := &rows[idx]
		if row.Status == StatusInvalid {
			continue
		}

		for _, rule := range active {
			if glob.Glob(rule.Pattern, row.Payee) {
				envelopeID, ruleID := rule.EnvelopeID, rule.ID
				row.EnvelopeID = &envelopeID
				row.MatchRuleID = &ruleID
				break
			}
		}
	}

	return nil
}
