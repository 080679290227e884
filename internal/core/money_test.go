package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		b, err := json.Marshal(Money{Cents: tc.cents})
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.cents, err)
		}
		if string(b) != tc.want {
			t.Fatalf("marshal %d: expected %s, got %s", tc.cents, tc.want, b)
		}
		var m Money
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if m.Cents != tc.cents {
			t.Fatalf("round trip %d: got %d", tc.cents, m.Cents)
		}
	}
}

func TestMoneyUnmarshalVariants(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"12,50"`), &m); err != nil || m.Cents != 1250 {
		t.Fatalf(`expected 1250 from "12,50", got %d (err=%v)`, m.Cents, err)
	}
	if err := json.Unmarshal([]byte(`80`), &m); err != nil || m.Cents != 8000 {
		t.Fatalf("expected 8000 from 80, got %d (err=%v)", m.Cents, err)
	}
	if err := json.Unmarshal([]byte(`-3`), &m); err == nil {
		t.Fatalf("expected error for negative amount")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, 7, 9)
	b, err := json.Marshal(d)
	if err != nil || string(b) != `"2025-07-09"` {
		t.Fatalf("marshal: got %s (err=%v)", b, err)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}

	// Zero date marshals as null and unmarshals back to zero.
	b, err = json.Marshal(Date{})
	if err != nil || string(b) != "null" {
		t.Fatalf("zero marshal: got %s (err=%v)", b, err)
	}
	var z Date
	if err := json.Unmarshal([]byte("null"), &z); err != nil || !z.IsZero() {
		t.Fatalf("zero unmarshal: %v (err=%v)", z, err)
	}
}
