package service

import (
	"strings"
	"testing"

	"core/internal/model"
)

func TestRenderSummaryEndsWithMarker(t *testing.T) {
	st := model.NewRequirementState()
	st.LocationQuery = "Bangalore"
	st.SizeMin = intPtr(20000)
	st.SizeMax = intPtr(50000)
	st.BudgetMax = intPtr(40)
	st.LandTypeIndustrial = boolPtr(true)
	st.FireNOCRequired = boolPtr(true)

	summary := RenderSummary(st)

	if !strings.HasSuffix(summary, ConfirmMarker+" (yes/no)") {
		t.Errorf("summary does not end with the confirmation question: %q", summary)
	}
	for _, want := range []string{"Bangalore", "20000 - 50000 sqft", "₹40/sqft", "Industrial", "Fire NOC"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q: %q", want, summary)
		}
	}
}

func TestRenderResults(t *testing.T) {
	resp := &model.SearchResponse{
		Page:    1,
		Results: sampleResults(),
	}
	out := RenderResults(resp, 5)
	if !strings.Contains(out, "ID: 42") {
		t.Errorf("results missing listing line: %q", out)
	}
	if strings.Contains(out, "more") {
		t.Errorf("partial page should not advertise more results: %q", out)
	}

	// A full page advertises pagination.
	full := &model.SearchResponse{Page: 1}
	for i := 0; i < 5; i++ {
		full.Results = append(full.Results, sampleResults()[0])
	}
	out = RenderResults(full, 5)
	if !strings.Contains(out, "'more'") {
		t.Errorf("full page should advertise pagination: %q", out)
	}
}

func TestRenderResultsEmpty(t *testing.T) {
	out := RenderResults(&model.SearchResponse{Page: 1}, 5)
	if !strings.Contains(out, "couldn't find") {
		t.Errorf("empty results message wrong: %q", out)
	}
}
