package service

import (
	"context"
	"testing"

	"core/internal/model"
)

func TestExtractLandType(t *testing.T) {
	tests := []struct {
		input          string
		wantIndustrial bool
	}{
		{"industrial", true},
		{"yes industrial", true},
		{"we do manufacturing", true},
		{"chemical processing unit", true},
		{"commercial", false},
		{"just distribution and storage", false},
		{"yes", true},
		{"no", false},
		{"whatever works", false}, // defaults to commercial/flexible
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ext := extractLandType(tt.input)
			if ext.LandTypeIndustrial == nil {
				t.Fatal("LandTypeIndustrial not set")
			}
			if *ext.LandTypeIndustrial != tt.wantIndustrial {
				t.Errorf("industrial = %v, want %v", *ext.LandTypeIndustrial, tt.wantIndustrial)
			}
		})
	}
}

func TestExtractLandTypeCorrection(t *testing.T) {
	ext := extractLandType("change it to commercial")
	if !ext.IsCorrection(model.FieldLandType) {
		t.Error("explicit change not tagged as correction")
	}
	if *ext.LandTypeIndustrial {
		t.Error("industrial = true, want false")
	}
}

func TestExtractSpecificsDecline(t *testing.T) {
	e := NewAIFieldExtractor(nil)

	for _, input := range []string{"none", "No", "nothing", "nope"} {
		ext, err := e.Extract(context.Background(), model.StageSpecifics, input)
		if err != nil {
			t.Fatalf("Extract(%q): %v", input, err)
		}
		for _, field := range []string{model.FieldStructureType, model.FieldLoadingDocks, model.FieldOtherSpecs} {
			if !ext.MarkedNotApplicable(field) {
				t.Errorf("Extract(%q): %s not marked not_applicable", input, field)
			}
		}
	}
}

func TestExtractEmptyInput(t *testing.T) {
	e := NewAIFieldExtractor(nil)
	ext, err := e.Extract(context.Background(), model.StageLocationSize, "   ")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !ext.Empty() {
		t.Errorf("expected empty extraction, got %+v", ext)
	}
}

func TestSanitizeExtraction(t *testing.T) {
	neg := -500
	weird := "wooden shed"
	peb := "pre-engineered building"
	budget := 30

	ext := &model.Extraction{
		SizeMin:       &neg,
		StructureType: &weird,
	}
	sanitizeExtraction(ext, "some message")
	if ext.SizeMin != nil {
		t.Error("negative size not dropped")
	}
	if ext.StructureType != nil {
		t.Error("unknown structure type not dropped")
	}

	ext = &model.Extraction{StructureType: &peb}
	sanitizeExtraction(ext, "pre-engineered building please")
	if ext.StructureType == nil || *ext.StructureType != "PEB" {
		t.Errorf("StructureType = %v, want PEB", ext.StructureType)
	}

	// Keyword corrections are supplemented when the model omits the tag.
	ext = &model.Extraction{BudgetMax: &budget}
	sanitizeExtraction(ext, "change the budget to 30")
	if !ext.IsCorrection(model.FieldBudgetMax) {
		t.Error("budget change not tagged as correction")
	}
}
