package service

import (
	"testing"

	"core/internal/model"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestEvaluateLocationSizeStage(t *testing.T) {
	tests := []struct {
		name         string
		ext          *model.Extraction
		wantComplete bool
		wantTopic    string
	}{
		{
			name:         "nothing extracted",
			ext:          &model.Extraction{},
			wantComplete: false,
			wantTopic:    TopicLocation,
		},
		{
			name:         "location only",
			ext:          &model.Extraction{LocationQuery: strPtr("Bangalore")},
			wantComplete: false,
			wantTopic:    TopicSize,
		},
		{
			name: "location and size in one message",
			ext: &model.Extraction{
				LocationQuery: strPtr("Bangalore"),
				SizeMin:       intPtr(20000),
			},
			wantComplete: true,
			wantTopic:    TopicLandType,
		},
	}

	p := NewStagePolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := model.NewRequirementState()
			complete, topic := p.Evaluate(st, "some message", tt.ext)
			if complete != tt.wantComplete {
				t.Errorf("complete = %v, want %v", complete, tt.wantComplete)
			}
			if topic != tt.wantTopic {
				t.Errorf("topic = %q, want %q", topic, tt.wantTopic)
			}
			if len(st.History) != 1 || st.History[0].Role != model.RoleUser {
				t.Errorf("user turn not recorded: %+v", st.History)
			}
		})
	}
}

func TestMergeDoesNotOverwriteWithoutCorrection(t *testing.T) {
	p := NewStagePolicy()
	st := model.NewRequirementState()
	st.LocationQuery = "Bangalore"
	st.ResolvedCities = []string{"Bangalore"}
	st.SizeMin = intPtr(20000)

	// Later extraction with different values but no correction tags.
	p.Evaluate(st, "also needs power backup", &model.Extraction{
		LocationQuery: strPtr("Mumbai"),
		SizeMin:       intPtr(5000),
	})

	if st.LocationQuery != "Bangalore" {
		t.Errorf("LocationQuery overwritten to %q", st.LocationQuery)
	}
	if len(st.ResolvedCities) != 1 {
		t.Errorf("resolution dropped without a location change")
	}
	if *st.SizeMin != 20000 {
		t.Errorf("SizeMin overwritten to %d", *st.SizeMin)
	}
}

func TestMergeCorrectionOverwrites(t *testing.T) {
	p := NewStagePolicy()
	st := model.NewRequirementState()
	st.LocationQuery = "Bangalore"
	st.ResolvedCities = []string{"Bangalore"}
	st.LocationResolveAttempted = true

	p.Evaluate(st, "change the location to Mumbai", &model.Extraction{
		LocationQuery: strPtr("Mumbai"),
		Corrections:   []string{model.FieldLocation},
	})

	if st.LocationQuery != "Mumbai" {
		t.Errorf("LocationQuery = %q, want Mumbai", st.LocationQuery)
	}
	if st.ResolvedCities != nil || st.ResolvedState != "" {
		t.Errorf("stale resolution kept after location change")
	}
	if st.LocationResolveAttempted {
		t.Errorf("attempted flag kept after location change, new query would never resolve")
	}
}

func TestMergeRangeNormalization(t *testing.T) {
	tests := []struct {
		name    string
		min     *int
		max     *int
		wantMin int
		wantMax int
	}{
		{
			name:    "inverted range is swapped",
			min:     intPtr(50000),
			max:     intPtr(20000),
			wantMin: 20000,
			wantMax: 50000,
		},
		{
			name:    "exact value widens to a band",
			min:     intPtr(30000),
			max:     intPtr(30000),
			wantMin: 24000,
			wantMax: 36000,
		},
		{
			name:    "well-formed range kept as is",
			min:     intPtr(10000),
			max:     intPtr(40000),
			wantMin: 10000,
			wantMax: 40000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var curMin, curMax *int
			mergeRange(&curMin, &curMax, tt.min, tt.max, false)
			if curMin == nil || *curMin != tt.wantMin {
				t.Errorf("min = %v, want %d", curMin, tt.wantMin)
			}
			if curMax == nil || *curMax != tt.wantMax {
				t.Errorf("max = %v, want %d", curMax, tt.wantMax)
			}
		})
	}
}

func TestMergeRangeTreatsPairAsOneField(t *testing.T) {
	curMin := intPtr(10000)
	var curMax *int

	// A set min blocks a non-correction update to either bound.
	mergeRange(&curMin, &curMax, nil, intPtr(90000), false)
	if curMax != nil {
		t.Errorf("max set despite existing bound: %d", *curMax)
	}

	// A correction replaces the whole pair.
	mergeRange(&curMin, &curMax, intPtr(20000), intPtr(60000), true)
	if curMin == nil || *curMin != 20000 || curMax == nil || *curMax != 60000 {
		t.Errorf("correction did not replace pair: min=%v max=%v", curMin, curMax)
	}
}

func TestMergeSpecNotApplicable(t *testing.T) {
	p := NewStagePolicy()
	st := model.NewRequirementState()
	st.Stage = model.StageSpecifics

	complete, topic := p.Evaluate(st, "none of those matter", &model.Extraction{
		NotApplicable: []string{
			model.FieldStructureType,
			model.FieldLoadingDocks,
			model.FieldOtherSpecs,
		},
	})
	if !complete || topic != TopicConfirm {
		t.Fatalf("specifics stage should complete, got complete=%v topic=%q", complete, topic)
	}

	for name, ans := range map[string]model.SpecAnswer{
		"structure_type": st.StructureType,
		"loading_docks":  st.LoadingDocks,
		"other_specs":    st.OtherSpecs,
	} {
		if ans.Status != model.NotApplicable {
			t.Errorf("%s status = %q, want not_applicable", name, ans.Status)
		}
	}

	// A later answer without a correction must not displace the decline.
	p.Evaluate(st, "peb maybe", &model.Extraction{StructureType: strPtr("PEB")})
	if st.StructureType.Status != model.NotApplicable {
		t.Errorf("not_applicable displaced without correction")
	}

	// A correction can still change it.
	p.Evaluate(st, "actually make it PEB", &model.Extraction{
		StructureType: strPtr("PEB"),
		Corrections:   []string{model.FieldStructureType},
	})
	if st.StructureType.Status != model.Answered || st.StructureType.Value != "PEB" {
		t.Errorf("correction did not apply: %+v", st.StructureType)
	}
}

func TestEvaluateConfirmationStage(t *testing.T) {
	p := NewStagePolicy()
	st := model.NewRequirementState()
	st.Stage = model.StageConfirmation

	complete, _ := p.Evaluate(st, "looks wrong", &model.Extraction{})
	if complete {
		t.Error("confirmation stage complete without the confirmed flag")
	}

	st.RequirementsConfirmed = true
	complete, _ = p.Evaluate(st, "yes", &model.Extraction{})
	if !complete {
		t.Error("confirmation stage not complete with the confirmed flag set")
	}
}
