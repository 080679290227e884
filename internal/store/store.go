// Package store owns the in-memory transaction, budget and goal
// collections. It is the sole mutation surface: every create, update and
// delete goes through here, and readers get copies in insertion order.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"financeflow/internal/core"
)

type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	budgets      []core.Budget
	goals        []core.Goal
}

func New() *Store {
	return &Store{}
}

// newID generates a collision-resistant identifier for a new record.
// Uniqueness within a single data set is all that is required.
func newID() string {
	return uuid.NewString()
}

// Collections returns copies of all three collections, taken under one
// lock so the trio is mutually consistent.
func (s *Store) Collections() ([]core.Transaction, []core.Budget, []core.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTxs(s.transactions), copyBudgets(s.budgets), copyGoals(s.goals)
}

// ReplaceAll substitutes all three collections at once. Used by import,
// which has replace-all semantics rather than merge.
func (s *Store) ReplaceAll(txs []core.Transaction, budgets []core.Budget, goals []core.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = copyTxs(txs)
	s.budgets = copyBudgets(budgets)
	s.goals = copyGoals(goals)
}

func (s *Store) ListTransactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTxs(s.transactions)
}

// CreateTransaction validates the draft, assigns a fresh id and creation
// time, and appends. On validation failure nothing is mutated.
func (s *Store) CreateTransaction(draft core.Transaction) (core.Transaction, error) {
	draft.Description = strings.TrimSpace(draft.Description)
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}
	draft.ID = newID()
	draft.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, draft)
	return draft, nil
}

// UpdateTransaction replaces the record with the given id in place,
// keeping its position and id. The original creation time survives.
func (s *Store) UpdateTransaction(id string, draft core.Transaction) (core.Transaction, error) {
	draft.Description = strings.TrimSpace(draft.Description)
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			draft.ID = id
			draft.CreatedAt = t.CreatedAt
			s.transactions[i] = draft
			return draft, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

// DeleteTransaction removes the record with the given id. Deleting an
// absent id is a no-op.
func (s *Store) DeleteTransaction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return
		}
	}
}

func (s *Store) ListBudgets() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyBudgets(s.budgets)
}

// CreateBudget enforces at most one budget per category.
func (s *Store) CreateBudget(draft core.Budget) (core.Budget, error) {
	if err := draft.Validate(); err != nil {
		return core.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets {
		if b.Category == draft.Category {
			return core.Budget{}, &core.DuplicateError{Category: draft.Category}
		}
	}
	draft.ID = newID()
	s.budgets = append(s.budgets, draft)
	return draft, nil
}

// UpdateBudget re-validates like create; the uniqueness check excludes
// the record itself so an edit keeping its own category succeeds.
func (s *Store) UpdateBudget(id string, draft core.Budget) (core.Budget, error) {
	if err := draft.Validate(); err != nil {
		return core.Budget{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, b := range s.budgets {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Budget{}, core.ErrNotFound
	}
	for i, b := range s.budgets {
		if i != idx && b.Category == draft.Category {
			return core.Budget{}, &core.DuplicateError{Category: draft.Category}
		}
	}
	draft.ID = id
	s.budgets[idx] = draft
	return draft, nil
}

// DeleteBudget removes a budget. Transactions of its category are left
// alone; the budget relationship is always derived, never stored.
func (s *Store) DeleteBudget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			return
		}
	}
}

func (s *Store) ListGoals() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyGoals(s.goals)
}

func (s *Store) CreateGoal(draft core.Goal) (core.Goal, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if err := draft.Validate(); err != nil {
		return core.Goal{}, err
	}
	draft.ID = newID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, draft)
	return draft, nil
}

func (s *Store) UpdateGoal(id string, draft core.Goal) (core.Goal, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if err := draft.Validate(); err != nil {
		return core.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			draft.ID = id
			s.goals[i] = draft
			return draft, nil
		}
	}
	return core.Goal{}, core.ErrNotFound
}

func (s *Store) DeleteGoal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return
		}
	}
}

// UpdateGoalCurrent sets a goal's saved amount. This replaces editing
// the whole record when only progress changes; the amount must be
// non-negative but may exceed the target.
func (s *Store) UpdateGoalCurrent(id string, current core.Money) (core.Goal, error) {
	if current.Cents < 0 {
		return core.Goal{}, &core.ValidationError{Fields: []string{"current"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals[i].Current = current
			return s.goals[i], nil
		}
	}
	return core.Goal{}, core.ErrNotFound
}

func copyTxs(in []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(in))
	copy(out, in)
	return out
}

func copyBudgets(in []core.Budget) []core.Budget {
	out := make([]core.Budget, len(in))
	copy(out, in)
	return out
}

func copyGoals(in []core.Goal) []core.Goal {
	out := make([]core.Goal, len(in))
	copy(out, in)
	return out
}
