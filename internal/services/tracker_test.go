package services

import (
	"context"
	"errors"
	"testing"

	"financeflow/internal/core"
	"financeflow/internal/events"
	"financeflow/internal/persist"
	"financeflow/internal/store"
)

type capturingPublisher struct {
	messages []*events.RecordChange
	fail     bool
}

func (p *capturingPublisher) PublishRecordChange(_ context.Context, msg *events.RecordChange) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.messages = append(p.messages, msg)
	return nil
}

func newTestTracker(pub Publisher) (*Tracker, *persist.MemoryStore) {
	blobs := persist.NewMemoryStore()
	return NewTracker(store.New(), persist.NewGateway(blobs), pub), blobs
}

func sampleTransaction() core.Transaction {
	return core.Transaction{
		Amount:      core.Money{Cents: 1250},
		Description: "Groceries",
		Category:    "Food & Groceries",
		Type:        core.Expense,
		Date:        core.NewDate(2026, 3, 14),
	}
}

func TestTrackerCreatePersistsAndPublishes(t *testing.T) {
	pub := &capturingPublisher{}
	tracker, blobs := newTestTracker(pub)
	ctx := context.Background()

	rec, err := tracker.CreateTransaction(ctx, sampleTransaction())
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected an assigned id")
	}

	// A fresh tracker over the same blobs must see the record.
	other := NewTracker(store.New(), persist.NewGateway(blobs), nil)
	if warnings := other.Init(ctx); len(warnings) != 0 {
		t.Fatalf("unexpected load warnings: %v", warnings)
	}
	txs := other.Transactions()
	if len(txs) != 1 || txs[0].ID != rec.ID {
		t.Fatalf("reloaded transactions = %+v, want the created record", txs)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Entity != events.EntityTransaction || msg.Action != events.ActionCreated || msg.ID != rec.ID {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestTrackerValidationErrorDoesNotPersist(t *testing.T) {
	pub := &capturingPublisher{}
	tracker, _ := newTestTracker(pub)

	draft := sampleTransaction()
	draft.Category = "Rocket Fuel"
	if _, err := tracker.CreateTransaction(context.Background(), draft); err == nil {
		t.Fatal("expected a validation error")
	}
	if len(tracker.Transactions()) != 0 {
		t.Fatal("invalid record must not be stored")
	}
	if len(pub.messages) != 0 {
		t.Fatal("invalid record must not be published")
	}
}

func TestTrackerSaveFailureKeepsMemoryState(t *testing.T) {
	tracker, blobs := newTestTracker(nil)
	ctx := context.Background()
	blobs.SetQuota(1)

	rec, err := tracker.CreateTransaction(ctx, sampleTransaction())
	var perr *core.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *core.PersistenceError", err)
	}
	if rec.ID == "" {
		t.Fatal("record should still be returned on a save failure")
	}
	if len(tracker.Transactions()) != 1 {
		t.Fatal("in-memory mutation must stand when the save fails")
	}
}

func TestTrackerPublishFailureIsNotFatal(t *testing.T) {
	tracker, _ := newTestTracker(&capturingPublisher{fail: true})

	if _, err := tracker.CreateTransaction(context.Background(), sampleTransaction()); err != nil {
		t.Fatalf("publish failures must not surface: %v", err)
	}
}

func TestTrackerSnapshotRoundTrip(t *testing.T) {
	tracker, _ := newTestTracker(nil)
	ctx := context.Background()

	if _, err := tracker.CreateTransaction(ctx, sampleTransaction()); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if _, err := tracker.CreateBudget(ctx, core.Budget{Category: "Food & Groceries", Amount: core.Money{Cents: 20000}}); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}

	snap := tracker.ExportSnapshot(core.NewDate(2026, 4, 1).Time)
	raw, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	pub := &capturingPublisher{}
	fresh, _ := newTestTracker(pub)
	if err := fresh.ImportSnapshot(ctx, raw); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}
	if len(fresh.Transactions()) != 1 || len(fresh.Budgets()) != 1 {
		t.Fatal("import must restore all collections")
	}
	if len(pub.messages) != 1 || pub.messages[0].Action != events.ActionImported {
		t.Fatalf("expected a single imported event, got %+v", pub.messages)
	}
}

func TestTrackerImportRejectsMalformedSnapshot(t *testing.T) {
	tracker, _ := newTestTracker(nil)
	ctx := context.Background()

	if _, err := tracker.CreateTransaction(ctx, sampleTransaction()); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	var ferr *core.FormatError
	err := tracker.ImportSnapshot(ctx, []byte(`{"transactions": []}`))
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want *core.FormatError", err)
	}
	if len(tracker.Transactions()) != 1 {
		t.Fatal("a rejected import must leave existing records untouched")
	}
}
