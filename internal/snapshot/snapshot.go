// Package snapshot converts between the in-memory collections and the
// portable backup format used by export and import.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"financeflow/internal/core"
)

// Version identifies the snapshot layout. It is informational only;
// import performs no version-gated migration.
const Version = "1.0"

type Snapshot struct {
	Transactions []core.Transaction `json:"transactions"`
	Budgets      []core.Budget      `json:"budgets"`
	Goals        []core.Goal        `json:"goals"`
	ExportDate   time.Time          `json:"exportDate"`
	Version      string             `json:"version"`
}

// Export builds a snapshot of the three collections. Nil slices are
// normalized to empty so the JSON always carries the three array keys.
func Export(txs []core.Transaction, budgets []core.Budget, goals []core.Goal, now time.Time) Snapshot {
	if txs == nil {
		txs = []core.Transaction{}
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	if goals == nil {
		goals = []core.Goal{}
	}
	return Snapshot{
		Transactions: txs,
		Budgets:      budgets,
		Goals:        goals,
		ExportDate:   now.UTC(),
		Version:      Version,
	}
}

// Encode renders the snapshot as indented JSON, matching the backup
// files users keep around.
func (s Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a raw snapshot. All three collection keys must be
// present (empty arrays are fine); a missing key rejects the whole
// import with a FormatError, no partial apply. Every record must pass
// its own validation, so a snapshot cannot smuggle in records the API
// would refuse. Unknown keys are ignored and the version field is not
// interpreted.
func Decode(raw []byte) ([]core.Transaction, []core.Budget, []core.Goal, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, nil, nil, fmt.Errorf("parse snapshot: %w", err)
	}

	var missing []string
	for _, key := range []string{"transactions", "budgets", "goals"} {
		if _, ok := top[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, nil, nil, &core.FormatError{Missing: missing}
	}

	var txs []core.Transaction
	if err := json.Unmarshal(top["transactions"], &txs); err != nil {
		return nil, nil, nil, fmt.Errorf("parse transactions: %w", err)
	}
	var budgets []core.Budget
	if err := json.Unmarshal(top["budgets"], &budgets); err != nil {
		return nil, nil, nil, fmt.Errorf("parse budgets: %w", err)
	}
	var goals []core.Goal
	if err := json.Unmarshal(top["goals"], &goals); err != nil {
		return nil, nil, nil, fmt.Errorf("parse goals: %w", err)
	}

	for i, t := range txs {
		if err := t.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("invalid transaction %d: %w", i, err)
		}
	}
	for i, b := range budgets {
		if err := b.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("invalid budget %d: %w", i, err)
		}
	}
	for i, g := range goals {
		if err := g.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("invalid goal %d: %w", i, err)
		}
	}

	return txs, budgets, goals, nil
}
