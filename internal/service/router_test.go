package service

import (
	"testing"

	"core/internal/model"
)

func TestRoute(t *testing.T) {
	confirmed := model.NewRequirementState()
	confirmed.LocationQuery = "Bangalore"
	confirmed.SizeMin = intPtr(20000)
	confirmed.RequirementsConfirmed = true

	confirmedButEmpty := model.NewRequirementState()
	confirmedButEmpty.RequirementsConfirmed = true

	tests := []struct {
		name     string
		stage    model.Stage
		st       *model.RequirementState
		complete bool
		want     model.Stage
	}{
		{
			name:     "incomplete stage remains",
			stage:    model.StageLocationSize,
			st:       model.NewRequirementState(),
			complete: false,
			want:     model.StageLocationSize,
		},
		{
			name:     "complete stage advances",
			stage:    model.StageLocationSize,
			st:       model.NewRequirementState(),
			complete: true,
			want:     model.StageLandType,
		},
		{
			name:     "land type advances to specifics",
			stage:    model.StageLandType,
			st:       model.NewRequirementState(),
			complete: true,
			want:     model.StageSpecifics,
		},
		{
			name:     "confirmed state enters search",
			stage:    model.StageConfirmation,
			st:       confirmed,
			complete: true,
			want:     model.StageSearch,
		},
		{
			name:     "confirmation without flag remains",
			stage:    model.StageConfirmation,
			st:       model.NewRequirementState(),
			complete: false,
			want:     model.StageConfirmation,
		},
		{
			name:     "confirmed but missing mandatory fields remains",
			stage:    model.StageConfirmation,
			st:       confirmedButEmpty,
			complete: false,
			want:     model.StageConfirmation,
		},
		{
			name:     "search always falls through to done",
			stage:    model.StageSearch,
			st:       confirmed,
			complete: false,
			want:     model.StageDone,
		},
		{
			name:     "done is terminal",
			stage:    model.StageDone,
			st:       confirmed,
			complete: false,
			want:     model.StageDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(tt.stage, tt.st, tt.complete); got != tt.want {
				t.Errorf("Route(%s) = %s, want %s", tt.stage, got, tt.want)
			}
		})
	}
}

func TestStageOrderIsForwardOnly(t *testing.T) {
	order := []model.Stage{
		model.StageLocationSize,
		model.StageLandType,
		model.StageSpecifics,
		model.StageConfirmation,
		model.StageSearch,
		model.StageDone,
	}
	for i := 0; i < len(order)-1; i++ {
		if !order[i].Before(order[i+1]) {
			t.Errorf("%s should come before %s", order[i], order[i+1])
		}
		if order[i].Next() != order[i+1] {
			t.Errorf("%s.Next() = %s, want %s", order[i], order[i].Next(), order[i+1])
		}
	}
	if model.StageDone.Next() != model.StageDone {
		t.Errorf("done should be terminal")
	}
}
