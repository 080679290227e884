// Package persist moves the full tracker state between memory and a
// key-value blob store: three independently keyed blobs, one JSON array
// each, written together after every mutation and read once at startup.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"financeflow/internal/core"
)

// Blob keys of the persisted state layout.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
	KeyGoals        = "goals"
)

type Gateway struct {
	blobs BlobStore
}

func NewGateway(blobs BlobStore) *Gateway {
	return &Gateway{blobs: blobs}
}

// Load reads the three blobs. An unreadable or corrupt blob yields an
// empty collection and a LoadError in the warnings; the other blobs
// still load. Missing blobs (first run) are silent.
func (g *Gateway) Load(ctx context.Context) ([]core.Transaction, []core.Budget, []core.Goal, []error) {
	var warnings []error

	var txs []core.Transaction
	if err := g.loadBlob(ctx, KeyTransactions, &txs); err != nil {
		txs = nil
		warnings = append(warnings, err)
	}
	var budgets []core.Budget
	if err := g.loadBlob(ctx, KeyBudgets, &budgets); err != nil {
		budgets = nil
		warnings = append(warnings, err)
	}
	var goals []core.Goal
	if err := g.loadBlob(ctx, KeyGoals, &goals); err != nil {
		goals = nil
		warnings = append(warnings, err)
	}
	return txs, budgets, goals, warnings
}

func (g *Gateway) loadBlob(ctx context.Context, key string, out any) error {
	raw, err := g.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNoBlob) {
			return nil
		}
		return &core.LoadError{Key: key, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &core.LoadError{Key: key, Err: err}
	}
	return nil
}

// Save serializes each collection independently and writes all three.
// A rejected write surfaces as a PersistenceError; the in-memory state
// the caller holds is never touched, so a retry is just another Save.
func (g *Gateway) Save(ctx context.Context, txs []core.Transaction, budgets []core.Budget, goals []core.Goal) error {
	blobs := []struct {
		key  string
		data any
	}{
		{KeyTransactions, nonNilTxs(txs)},
		{KeyBudgets, nonNilBudgets(budgets)},
		{KeyGoals, nonNilGoals(goals)},
	}
	for _, b := range blobs {
		raw, err := json.Marshal(b.data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", b.key, err)
		}
		if err := g.blobs.Put(ctx, b.key, raw); err != nil {
			return &core.PersistenceError{Key: b.key, Err: err}
		}
	}
	return nil
}

func nonNilTxs(in []core.Transaction) []core.Transaction {
	if in == nil {
		return []core.Transaction{}
	}
	return in
}

func nonNilBudgets(in []core.Budget) []core.Budget {
	if in == nil {
		return []core.Budget{}
	}
	return in
}

func nonNilGoals(in []core.Goal) []core.Goal {
	if in == nil {
		return []core.Goal{}
	}
	return in
}
