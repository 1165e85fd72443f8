package models

import "testing"

func TestParseProjectStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    ProjectStatus
		wantErr bool
	}{
		{raw: "planning", want: ProjectStatusPlanning},
		{raw: "in-progress", want: ProjectStatusInProgress},
		{raw: "completed", want: ProjectStatusCompleted},
		{raw: "pending", wantErr: true},
		{raw: "Planning", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseProjectStatus(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProjectStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseProjectStatus(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range TaskStatuses {
		if _, err := ParseTaskStatus(string(s)); err != nil {
			t.Errorf("ParseTaskStatus(%q) unexpected error: %v", s, err)
		}
	}

	// "planning" is a project status only
	if _, err := ParseTaskStatus("planning"); err == nil {
		t.Error("expected error for planning")
	}
}

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityLow, 1},
		{PriorityMedium, 2},
		{PriorityHigh, 3},
		{PriorityCritical, 4},
		{Priority("urgent"), 0},
	}

	for _, tt := range tests {
		if got := tt.priority.Rank(); got != tt.want {
			t.Errorf("%q.Rank() = %d, want %d", tt.priority, got, tt.want)
		}
	}

	for i := 1; i < len(Priorities); i++ {
		if Priorities[i-1].Rank() >= Priorities[i].Rank() {
			t.Errorf("Priorities not ascending at %d", i)
		}
	}
}

func TestParsePriorityError(t *testing.T) {
	_, err := ParsePriority("urgent")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "must be one of: low, medium, high, critical"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
