package importer

import (
	"io"

	"github.com/envelope-zero/budget-engine/internal/ledger"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/envelope-zero/budget-engine/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result is the outcome of a committed import.
type Result struct {
	Inserted          int                  `json:"inserted" example:"12"`
	SkippedDuplicates int                  `json:"skippedDuplicates" example:"3"`
	SkippedInvalid    int                  `json:"skippedInvalid" example:"1"`
	Transactions      []models.Transaction `json:"transactions"`
}

// Commit imports the rows of the input at the given lines into the account.
// If lines is nil, all rows are imported.
//
// The rows are classified again against the current transactions of the account,
// so committing the same input twice does not create duplicates. Duplicate and
// invalid rows are skipped and counted, they never abort the import.
func (i Importer) Commit(db *gorm.DB, accountID uuid.UUID, r io.Reader, lines []int) (Result, error) {
	rows, err := i.rows(db, accountID, r, lines)
	if err != nil {
		return Result{}, err
	}

	result := Result{Transactions: []models.Transaction{}}
	var months []types.Month
	for _, row := range rows {
		switch row.Status {
		case StatusDuplicate:
			result.SkippedDuplicates++
			continue
		case StatusInvalid:
			result.SkippedInvalid++
			continue
		}

		result.Transactions = append(result.Transactions, models.Transaction{
			AccountID:  accountID,
			EnvelopeID: row.EnvelopeID,
			Amount:     row.Amount.Amount(),
			Date:       row.Date,
			Payee:      row.Payee,
			Memo:       row.Memo,
		})
		months = append(months, types.MonthOf(row.Date))
	}

	if len(result.Transactions) == 0 {
		return result, nil
	}

	err = db.Create(&result.Transactions).Error
	if err != nil {
		return Result{}, err
	}
	result.Inserted = len(result.Transactions)

	err = ledger.Settle(db, months...)
	if err != nil {
		return Result{}, err
	}

	return result, nil
}
