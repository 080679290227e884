package events

import "testing"

func TestRecordChangeJSONRoundTrip(t *testing.T) {
	msg := NewRecordChange(EntityBudget, ActionDeleted, "b1")
	raw, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := RecordChangeFromJSON(raw)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Entity != EntityBudget || back.Action != ActionDeleted || back.ID != "b1" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestRecordChangeFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RecordChangeFromJSON([]byte("{oops")); err == nil {
		t.Fatalf("expected error")
	}
}
