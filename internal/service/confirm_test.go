package service

import (
	"testing"

	"core/internal/model"
)

func summaryHistory() []model.Turn {
	return []model.Turn{
		{Role: model.RoleAgent, Content: "Where are you looking for a warehouse?"},
		{Role: model.RoleUser, Content: "warehouse in blr, 20000 sqft"},
		{Role: model.RoleAgent, Content: "What land classification do you require?"},
		{Role: model.RoleUser, Content: "industrial"},
		{Role: model.RoleAgent, Content: "Hope I captured your requirements well!\n\n📍 Location: **blr**\n\n" + ConfirmMarker + " (yes/no)"},
	}
}

func TestConfirmationDetector(t *testing.T) {
	tests := []struct {
		name    string
		history []model.Turn
		text    string
		want    bool
	}{
		{
			name:    "yes after summary",
			history: summaryHistory(),
			text:    "yes",
			want:    true,
		},
		{
			name:    "go ahead after summary",
			history: summaryHistory(),
			text:    "sure, go ahead",
			want:    true,
		},
		{
			name:    "negative after summary",
			history: summaryHistory(),
			text:    "no, change the budget",
			want:    false,
		},
		{
			name: "affirmative without marker in window",
			history: []model.Turn{
				{Role: model.RoleAgent, Content: "Do you need a fire NOC?"},
				{Role: model.RoleUser, Content: "maybe"},
			},
			text: "yes",
			want: false,
		},
		{
			name: "marker pushed out of the lookback window",
			history: append(summaryHistory(),
				model.Turn{Role: model.RoleUser, Content: "what does PEB mean?"},
				model.Turn{Role: model.RoleAgent, Content: "Pre-engineered steel construction."},
				model.Turn{Role: model.RoleUser, Content: "and RCC?"},
				model.Turn{Role: model.RoleAgent, Content: "Reinforced concrete."},
				model.Turn{Role: model.RoleUser, Content: "got it"},
			),
			text: "yes",
			want: false,
		},
		{
			name: "marker in user turn does not count",
			history: []model.Turn{
				{Role: model.RoleUser, Content: ConfirmMarker},
			},
			text: "yes",
			want: false,
		},
		{
			name:    "empty reply",
			history: summaryHistory(),
			text:    "   ",
			want:    false,
		},
	}

	d := NewConfirmationDetector(5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.history, tt.text); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"yes", true},
		{"  YES  ", true},
		{"yes please", true},
		{"yep", true},
		{"sounds good", true},
		{"ok", true},
		{"no", false},
		{"not yet", false},
		{"eyes", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAffirmative(tt.text); got != tt.want {
			t.Errorf("IsAffirmative(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestConfirmationDetectorDefaultLookback(t *testing.T) {
	d := NewConfirmationDetector(0)
	if d.lookback != 5 {
		t.Errorf("lookback = %d, want 5", d.lookback)
	}
}
