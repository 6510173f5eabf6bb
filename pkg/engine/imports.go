package engine

import (
	"context"
	"io"
	"strconv"

	"github.com/envelope-zero/budget-engine/internal/importer"
	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportCommitRequest is the input to commit an import.
//
// Lines are the line numbers of the rows to import as reported by ImportPreview.
// If Lines is nil, all rows are imported.
type ImportCommitRequest struct {
	AccountID uuid.UUID
	Input     io.Reader
	Lines     []int
}

type MatchRuleRequest struct {
	Pattern    string
	EnvelopeID uuid.UUID
	Priority   uint
}

// UpdateMatchRuleRequest contains the fields to change. Nil fields are not changed.
type UpdateMatchRuleRequest struct {
	Pattern    *string
	EnvelopeID *uuid.UUID
	Priority   *uint
}

// ImportPreview parses a CSV file and classifies its rows as new, duplicate or
// invalid. Nothing is written.
func (e *Engine) ImportPreview(ctx context.Context, accountID uuid.UUID, input io.Reader) (ImportPreview, *Error) {
	return read(ctx, e, "ImportPreview", func(db *gorm.DB) (ImportPreview, error) {
		return e.importer.Preview(db, accountID, input)
	})
}

// ImportCommit imports the rows of a CSV file. Duplicates are detected again
// against the current transactions, so the same file can be committed repeatedly.
func (e *Engine) ImportCommit(ctx context.Context, r ImportCommitRequest) Result[ImportResult] {
	return run(ctx, e, "ImportCommit", func(u *unit) (ImportResult, error) {
		result, err := e.importer.Commit(u.tx, r.AccountID, r.Input, r.Lines)
		if err != nil {
			return ImportResult{}, err
		}

		u.touchAccount(r.AccountID)
		for _, t := range result.Transactions {
			e.created(u, t)
		}

		return e.importResultView(result), nil
	})
}

func (e *Engine) MatchRules(ctx context.Context) ([]MatchRule, *Error) {
	return read(ctx, e, "MatchRules", func(db *gorm.DB) ([]MatchRule, error) {
		rules, err := e.importer.MatchRules(db)
		if err != nil {
			return nil, err
		}

		views := make([]MatchRule, 0, len(rules))
		for _, rule := range rules {
			views = append(views, matchRuleView(rule))
		}
		return views, nil
	})
}

func (e *Engine) CreateMatchRule(ctx context.Context, r MatchRuleRequest) Result[MatchRule] {
	return run(ctx, e, "CreateMatchRule", func(u *unit) (MatchRule, error) {
		rule, err := e.importer.CreateMatchRule(u.tx, importer.MatchRuleInput{Pattern: r.Pattern, EnvelopeID: r.EnvelopeID, Priority: r.Priority})
		if err != nil {
			return MatchRule{}, err
		}

		u.change(Change{Kind: ChangeMatchRule, ID: rule.ID, Field: "pattern", New: rule.Pattern})
		return matchRuleView(rule), nil
	})
}

func (e *Engine) UpdateMatchRule(ctx context.Context, id uuid.UUID, r UpdateMatchRuleRequest) Result[MatchRule] {
	return run(ctx, e, "UpdateMatchRule", func(u *unit) (MatchRule, error) {
		old, err := e.importer.MatchRule(u.tx, id)
		if err != nil {
			return MatchRule{}, err
		}

		rule, err := e.importer.UpdateMatchRule(u.tx, id, importer.MatchRuleUpdate{Pattern: r.Pattern, EnvelopeID: r.EnvelopeID, Priority: r.Priority})
		if err != nil {
			return MatchRule{}, err
		}

		for _, c := range matchRuleChanges(old, rule) {
			u.change(c)
		}
		return matchRuleView(rule), nil
	})
}

func (e *Engine) DeleteMatchRule(ctx context.Context, id uuid.UUID) Result[MatchRule] {
	return run(ctx, e, "DeleteMatchRule", func(u *unit) (MatchRule, error) {
		rule, err := e.importer.DeleteMatchRule(u.tx, id)
		if err != nil {
			return MatchRule{}, err
		}

		u.change(Change{Kind: ChangeMatchRule, ID: rule.ID, Field: "pattern", Old: rule.Pattern})
		return matchRuleView(rule), nil
	})
}

func matchRuleChanges(old, updated models.MatchRule) []Change {
	var changes []Change
	for _, c := range []Change{
		{Kind: ChangeMatchRule, ID: updated.ID, Field: "pattern", Old: old.Pattern, New: updated.Pattern},
		{Kind: ChangeMatchRule, ID: updated.ID, Field: "envelope", Old: old.EnvelopeID.String(), New: updated.EnvelopeID.String()},
		{Kind: ChangeMatchRule, ID: updated.ID, Field: "priority", Old: strconv.FormatUint(uint64(old.Priority), 10), New: strconv.FormatUint(uint64(updated.Priority), 10)},
	} {
		if c.Old != c.New {
			changes = append(changes, c)
		}
	}
	return changes
}
