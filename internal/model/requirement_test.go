package model

import "testing"

func TestStageNext(t *testing.T) {
	tests := []struct {
		stage Stage
		want  Stage
	}{
		{StageLocationSize, StageLandType},
		{StageLandType, StageSpecifics},
		{StageSpecifics, StageConfirmation},
		{StageConfirmation, StageSearch},
		{StageSearch, StageDone},
		{StageDone, StageDone},
	}
	for _, tt := range tests {
		if got := tt.stage.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.stage, got, tt.want)
		}
	}
}

func TestStageValid(t *testing.T) {
	if !StageConfirmation.Valid() {
		t.Error("confirmation should be valid")
	}
	if Stage("browsing").Valid() {
		t.Error("unknown stage should be invalid")
	}
	if Stage("").Valid() {
		t.Error("empty stage should be invalid")
	}
}

func TestReadyForSearch(t *testing.T) {
	size := 20000

	st := NewRequirementState()
	if st.ReadyForSearch() {
		t.Error("empty state should not be ready")
	}

	st.LocationQuery = "Bangalore"
	if st.ReadyForSearch() {
		t.Error("location alone should not be ready")
	}

	st.SizeMin = &size
	if !st.ReadyForSearch() {
		t.Error("location plus size should be ready")
	}

	// Resolved fields count as location even without the raw query.
	st2 := NewRequirementState()
	st2.ResolvedCities = []string{"Bangalore"}
	st2.SizeMax = &size
	if !st2.ReadyForSearch() {
		t.Error("resolved city plus size should be ready")
	}
}

func TestSpecAnswerSet(t *testing.T) {
	if (SpecAnswer{}).Set() {
		t.Error("zero value should not count as set")
	}
	if (SpecAnswer{Status: Unanswered}).Set() {
		t.Error("unanswered should not count as set")
	}
	if !(SpecAnswer{Status: NotApplicable}).Set() {
		t.Error("not_applicable is a concrete state")
	}
	if !(SpecAnswer{Status: Answered, Value: "PEB"}).Set() {
		t.Error("answered should count as set")
	}
}

func TestAddTurn(t *testing.T) {
	st := NewRequirementState()
	st.AddTurn(RoleAgent, "hello")
	st.AddTurn(RoleUser, "hi")
	if len(st.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(st.History))
	}
	if st.History[0].Role != RoleAgent || st.History[1].Role != RoleUser {
		t.Errorf("turn order wrong: %+v", st.History)
	}
}
