package persist

import (
	"context"
	"errors"
	"testing"

	"financeflow/internal/core"
)

func sampleState() ([]core.Transaction, []core.Budget, []core.Goal) {
	txs := []core.Transaction{{
		ID:          "t1",
		Amount:      core.Money{Cents: 1250},
		Description: "weekly shop",
		Category:    "Food & Groceries",
		Type:        core.Expense,
		Date:        core.NewDate(2025, 3, 14),
	}}
	budgets := []core.Budget{{ID: "b1", Category: "Food & Groceries", Amount: core.Money{Cents: 20000}}}
	goals := []core.Goal{{ID: "g1", Name: "Trip", Target: core.Money{Cents: 50000}}}
	return txs, budgets, goals
}

func TestLoadFirstRunIsEmptyAndSilent(t *testing.T) {
	g := NewGateway(NewMemoryStore())
	txs, budgets, goals, warnings := g.Load(context.Background())
	if len(txs) != 0 || len(budgets) != 0 || len(goals) != 0 {
		t.Fatalf("expected empty collections")
	}
	if len(warnings) != 0 {
		t.Fatalf("missing blobs are not warnings: %v", warnings)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := NewGateway(NewMemoryStore())
	txs, budgets, goals := sampleState()

	if err := g.Save(context.Background(), txs, budgets, goals); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotTxs, gotBudgets, gotGoals, warnings := g.Load(context.Background())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(gotTxs) != 1 || gotTxs[0].ID != "t1" || gotTxs[0].Amount.Cents != 1250 {
		t.Fatalf("transactions not restored: %+v", gotTxs)
	}
	if len(gotBudgets) != 1 || gotBudgets[0].Amount.Cents != 20000 {
		t.Fatalf("budgets not restored: %+v", gotBudgets)
	}
	if len(gotGoals) != 1 || gotGoals[0].Name != "Trip" {
		t.Fatalf("goals not restored: %+v", gotGoals)
	}
}

func TestLoadCorruptBlobIsNonFatal(t *testing.T) {
	blobs := NewMemoryStore()
	g := NewGateway(blobs)
	txs, budgets, goals := sampleState()
	if err := g.Save(context.Background(), txs, budgets, goals); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Corrupt only the budgets blob.
	if err := blobs.Put(context.Background(), KeyBudgets, []byte("{corrupt")); err != nil {
		t.Fatalf("put: %v", err)
	}

	gotTxs, gotBudgets, gotGoals, warnings := g.Load(context.Background())
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	var lerr *core.LoadError
	if !errors.As(warnings[0], &lerr) || lerr.Key != KeyBudgets {
		t.Fatalf("expected LoadError for budgets, got %v", warnings[0])
	}
	if len(gotBudgets) != 0 {
		t.Fatalf("corrupt collection must load empty")
	}
	if len(gotTxs) != 1 || len(gotGoals) != 1 {
		t.Fatalf("other collections must be unaffected")
	}
}

func TestSaveQuotaFailureIsPersistenceError(t *testing.T) {
	blobs := NewMemoryStore()
	blobs.SetQuota(8)
	g := NewGateway(blobs)
	txs, budgets, goals := sampleState()

	err := g.Save(context.Background(), txs, budgets, goals)
	var perr *core.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestSaveEmptyStateWritesArrays(t *testing.T) {
	blobs := NewMemoryStore()
	g := NewGateway(blobs)
	if err := g.Save(context.Background(), nil, nil, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, key := range []string{KeyTransactions, KeyBudgets, KeyGoals} {
		raw, err := blobs.Get(context.Background(), key)
		if err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
		if string(raw) != "[]" {
			t.Fatalf("expected empty array for %s, got %s", key, raw)
		}
	}
}
