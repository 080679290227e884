// Package services orchestrates the record store, the persistence
// gateway and the change-event publisher: mutate memory first, flush the
// blobs, then notify. Event failures never fail the mutation.
package services

import (
	"context"
	"log/slog"
	"time"

	"financeflow/internal/core"
	"financeflow/internal/events"
	"financeflow/internal/persist"
	"financeflow/internal/snapshot"
	"financeflow/internal/store"
)

// Publisher is the outbound port for change notifications. It is
// optional; a nil publisher disables eventing.
type Publisher interface {
	PublishRecordChange(ctx context.Context, msg *events.RecordChange) error
}

type Tracker struct {
	store   *store.Store
	gateway *persist.Gateway
	pub     Publisher
}

func NewTracker(s *store.Store, g *persist.Gateway, pub Publisher) *Tracker {
	return &Tracker{store: s, gateway: g, pub: pub}
}

// Init loads the persisted state into the store. Unreadable blobs come
// back as warnings for logging; the tracker still starts.
func (t *Tracker) Init(ctx context.Context) []error {
	txs, budgets, goals, warnings := t.gateway.Load(ctx)
	t.store.ReplaceAll(txs, budgets, goals)
	return warnings
}

func (t *Tracker) Transactions() []core.Transaction { return t.store.ListTransactions() }
func (t *Tracker) Budgets() []core.Budget           { return t.store.ListBudgets() }
func (t *Tracker) Goals() []core.Goal               { return t.store.ListGoals() }

func (t *Tracker) CreateTransaction(ctx context.Context, draft core.Transaction) (core.Transaction, error) {
	rec, err := t.store.CreateTransaction(draft)
	if err != nil {
		return core.Transaction{}, err
	}
	err = t.flush(ctx)
	t.notify(ctx, events.EntityTransaction, events.ActionCreated, rec.ID)
	return rec, err
}

func (t *Tracker) UpdateTransaction(ctx context.Context, id string, draft core.Transaction) (core.Transaction, error) {
	rec, err := t.store.UpdateTransaction(id, draft)
	if err != nil {
		return core.Transaction{}, err
	}
	err = t.flush(ctx)
	t.notify(ctx, events.EntityTransaction, events.ActionUpdated, rec.ID)
	return rec, err
}

func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	t.store.DeleteTransaction(id)
	err := t.flush(ctx)
	t.notify(ctx, events.EntityTransaction, events.ActionDeleted, id)
	return err
}

func (t *Tracker) CreateBudget(ctx context.Context, draft core.Budget) (core.Budget, error) {
	rec, err := t.store.CreateBudget(draft)
	if err != nil {
		return core.Budget{}, err
	}
	err = t.flush(ctx)
	t.notify(ctx, events.EntityBudget, events.ActionCreated, rec.ID)
	return rec, err
}

func (t *Tracker) UpdateBudget(ctx context.Context, id string, draft core.Budget) (core.Budget, error) {
	rec, err := t.store.UpdateBudget(id, draft)
	if err != nil {
		return core.Budget{}, err
	}
	err = t.flush(ctx)
	t.notify(ctx, events.EntityBudget, events.ActionUpdated, rec.ID)
	return rec, err
}

func (t *Tracker) DeleteBudget(ctx context.Context, id string) error {
	t.store.DeleteBudget(id)
	err := t.flush(ctx)
	t.notify(ctx, events.EntityBudget, events.ActionDeleted, id)
	return err
}

func (t *Tracker) CreateGoal(ctx context.Context, draft core.Goal) (core.Goal, error) {
	rec, err := t.store.CreateGoal(draft)
	if err != nil {
		return core.Goal{}, err
	}
	err = t.flush(ctx)
	t.notify(ctx, events.EntityGoal, events.ActionCreated, rec.ID)
	return rec, err
}

func (t *Tracker) UpdateGoal(ctx context.Context, id string, draft core.Goal) (core.Goal, error) {
	rec, err := t.store.UpdateGoal(id, draft)
	if err != nil {
		return core.Goal{}, err
	}
	err = t.flush(ctx)
	t.notify(ctx, events.EntityGoal, events.ActionUpdated, rec.ID)
	return rec, err
}

func (t *Tracker) DeleteGoal(ctx context.Context, id string) error {
	t.store.DeleteGoal(id)
	err := t.flush(ctx)
	t.notify(ctx, events.EntityGoal, events.ActionDeleted, id)
	return err
}

func (t *Tracker) UpdateGoalCurrent(ctx context.Context, id string, current core.Money) (core.Goal, error) {
	rec, err := t.store.UpdateGoalCurrent(id, current)
	if err != nil {
		return core.Goal{}, err
	}
	err = t.flush(ctx)
	t.notify(ctx, events.EntityGoal, events.ActionUpdated, rec.ID)
	return rec, err
}

// ExportSnapshot captures the full current state in portable form.
func (t *Tracker) ExportSnapshot(now time.Time) snapshot.Snapshot {
	txs, budgets, goals := t.store.Collections()
	return snapshot.Export(txs, budgets, goals, now)
}

// ImportSnapshot replaces all three collections with the snapshot's
// content. A malformed snapshot leaves the current state untouched.
func (t *Tracker) ImportSnapshot(ctx context.Context, raw []byte) error {
	txs, budgets, goals, err := snapshot.Decode(raw)
	if err != nil {
		return err
	}
	t.store.ReplaceAll(txs, budgets, goals)
	err = t.flush(ctx)
	t.notify(ctx, events.EntitySnapshot, events.ActionImported, "")
	return err
}

// flush writes the whole state. A failed save is returned to the caller
// but the in-memory mutation stands; retrying is just the next save.
func (t *Tracker) flush(ctx context.Context) error {
	txs, budgets, goals := t.store.Collections()
	return t.gateway.Save(ctx, txs, budgets, goals)
}

func (t *Tracker) notify(ctx context.Context, entity, action, id string) {
	if t.pub == nil {
		return
	}
	if err := t.pub.PublishRecordChange(ctx, events.NewRecordChange(entity, action, id)); err != nil {
		slog.WarnContext(ctx, "Failed to publish record change",
			"entity", entity, "action", action, "id", id, "error", err)
	}
}
