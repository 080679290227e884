package events

import (
	"encoding/json"
	"time"
)

// Entities and actions carried by change messages.
const (
	EntityTransaction = "transaction"
	EntityBudget      = "budget"
	EntityGoal        = "goal"
	EntitySnapshot    = "snapshot"

	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported" // replace-all from a snapshot import
)

// RecordChange is a lightweight notification that a record changed.
// Consumers reload state from the persisted blobs; the message itself
// carries no field data.
type RecordChange struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChange(entity, action, id string) *RecordChange {
	return &RecordChange{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *RecordChange) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeFromJSON(data []byte) (*RecordChange, error) {
	var msg RecordChange
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
