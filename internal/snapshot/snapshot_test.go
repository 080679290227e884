package snapshot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"financeflow/internal/core"
)

func TestExportEncodeDecodeRoundTrip(t *testing.T) {
	txs := []core.Transaction{{
		ID:          "t1",
		Amount:      core.Money{Cents: 1250},
		Description: "weekly shop",
		Category:    "Food & Groceries",
		Type:        core.Expense,
		Date:        core.NewDate(2025, 3, 14),
		CreatedAt:   time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}}
	budgets := []core.Budget{{ID: "b1", Category: "Food & Groceries", Amount: core.Money{Cents: 20000}}}
	goals := []core.Goal{{ID: "g1", Name: "Trip", Target: core.Money{Cents: 50000}, Current: core.Money{Cents: 100}}}

	snap := Export(txs, budgets, goals, time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC))
	if snap.Version != Version {
		t.Fatalf("expected version %s, got %s", Version, snap.Version)
	}

	raw, err := snap.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, key := range []string{`"transactions"`, `"budgets"`, `"goals"`, `"exportDate"`, `"version"`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("encoded snapshot missing %s", key)
		}
	}

	gotTxs, gotBudgets, gotGoals, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(gotTxs) != 1 || gotTxs[0].ID != "t1" || gotTxs[0].Amount.Cents != 1250 {
		t.Fatalf("transactions not preserved: %+v", gotTxs)
	}
	if len(gotBudgets) != 1 || gotBudgets[0].Category != "Food & Groceries" {
		t.Fatalf("budgets not preserved: %+v", gotBudgets)
	}
	if len(gotGoals) != 1 || gotGoals[0].Target.Cents != 50000 {
		t.Fatalf("goals not preserved: %+v", gotGoals)
	}
}

func TestExportNormalizesNilCollections(t *testing.T) {
	raw, err := Export(nil, nil, nil, time.Now()).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Fatalf("nil collection leaked as null: %s", raw)
	}
}

func TestDecodeRejectsMissingKey(t *testing.T) {
	raw := []byte(`{"transactions": [], "goals": [], "version": "1.0"}`)
	_, _, _, err := Decode(raw)
	var ferr *core.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if len(ferr.Missing) != 1 || ferr.Missing[0] != "budgets" {
		t.Fatalf("unexpected missing keys: %v", ferr.Missing)
	}
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	raw := []byte(`{"transactions": [], "budgets": [], "goals": [], "futureField": {"a": 1}}`)
	if _, _, _, err := Decode(raw); err != nil {
		t.Fatalf("unknown keys must be ignored: %v", err)
	}
}

func TestDecodeRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "zero-amount budget",
			raw:  `{"transactions": [], "budgets": [{"id": "b1", "category": "Food & Groceries", "amount": 0}], "goals": []}`,
		},
		{
			name: "zero-target goal",
			raw:  `{"transactions": [], "budgets": [], "goals": [{"id": "g1", "name": "Trip", "target": 0, "current": 0}]}`,
		},
		{
			name: "transaction with wrong-set category",
			raw:  `{"transactions": [{"id": "t1", "amount": 5, "description": "x", "category": "Accommodation", "type": "income", "date": "2025-03-01"}], "budgets": [], "goals": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Decode([]byte(tt.raw))
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, _, _, err := Decode([]byte(`{not json`)); err == nil {
		t.Fatalf("expected parse error")
	}
}
