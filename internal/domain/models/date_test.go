package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2024-12-31"},
		{name: "leap day", input: "2024-02-29"},
		{name: "non-leap feb 29", input: "2023-02-29", wantErr: true},
		{name: "day out of range", input: "2024-02-30", wantErr: true},
		{name: "unpadded", input: "2024-1-5", wantErr: true},
		{name: "with time", input: "2024-01-05T10:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && d.String() != tt.input {
				t.Errorf("round trip = %q, want %q", d.String(), tt.input)
			}
		})
	}
}

func TestDateFromTimeDropsClock(t *testing.T) {
	ts := time.Date(2025, time.March, 9, 23, 59, 59, 0, time.UTC)
	d := DateFromTime(ts)

	if d.String() != "2025-03-09" {
		t.Errorf("DateFromTime = %s, want 2025-03-09", d)
	}
	if !d.Time().Equal(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time() = %v, want midnight UTC", d.Time())
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Deadline *Date `json:"deadline"`
	}

	if err := json.Unmarshal([]byte(`{"deadline":"2024-06-01"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Deadline == nil || *payload.Deadline != NewDate(2024, time.June, 1) {
		t.Fatalf("deadline = %v, want 2024-06-01", payload.Deadline)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"deadline":"2024-06-01"}` {
		t.Errorf("marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"deadline":"2024-13-01"}`), &payload); err == nil {
		t.Error("expected error for month 13")
	}
	if err := json.Unmarshal([]byte(`{"deadline":20240601}`), &payload); err == nil {
		t.Error("expected error for numeric date")
	}
}

func TestDateBefore(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 2)

	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("Before ordering is wrong")
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Error("IsZero is wrong")
	}
}
