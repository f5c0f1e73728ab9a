package utils

import (
	"reflect"
	"testing"
)

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Pure JSON",
			input: `{"location_query": "Bangalore", "size_min": 20000}`,
			want: map[string]interface{}{
				"location_query": "Bangalore",
				"size_min":       float64(20000),
			},
			wantErr: false,
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"budget_max": 40, "fire_noc_required": true}` + "\n```",
			want: map[string]interface{}{
				"budget_max":        float64(40),
				"fire_noc_required": true,
			},
			wantErr: false,
		},
		{
			name: "Bare markdown fence",
			input: "```\n" +
				`{"structure_type": "PEB"}` + "\n```",
			want: map[string]interface{}{
				"structure_type": "PEB",
			},
			wantErr: false,
		},
		{
			name:  "JSON with surrounding text",
			input: `Here is the extraction: {"location_query": "Pune", "size_max": 50000} as requested.`,
			want: map[string]interface{}{
				"location_query": "Pune",
				"size_max":       float64(50000),
			},
			wantErr: false,
		},
		{
			name:  "JSON with trailing comma",
			input: `{"loading_docks": "4", "other_specs": "cold storage",}`,
			want: map[string]interface{}{
				"loading_docks": "4",
				"other_specs":   "cold storage",
			},
			wantErr: false,
		},
		{
			name:  "JSON with unquoted keys",
			input: `{location_query: "Chennai", size_min: 10000}`,
			want: map[string]interface{}{
				"location_query": "Chennai",
				"size_min":       float64(10000),
			},
			wantErr: false,
		},
		{
			name:  "Braces inside string values",
			input: `The model said {"other_specs": "needs {covered} parking", "budget_min": 20}`,
			want: map[string]interface{}{
				"other_specs": "needs {covered} parking",
				"budget_min":  float64(20),
			},
			wantErr: false,
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "No JSON at all",
			input:   "I could not find any fields in that message.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseAIJSON(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAIJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAIJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAIJSONIntoStruct(t *testing.T) {
	type extraction struct {
		LocationQuery *string  `json:"location_query"`
		SizeMin       *int     `json:"size_min"`
		NotApplicable []string `json:"not_applicable"`
	}

	input := "```json\n{\"location_query\": \"blr\", \"size_min\": 20000, \"not_applicable\": [\"budget_min\"]}\n```"

	var got extraction
	if err := ParseAIJSON(input, &got); err != nil {
		t.Fatalf("ParseAIJSON() error = %v", err)
	}
	if got.LocationQuery == nil || *got.LocationQuery != "blr" {
		t.Errorf("LocationQuery = %v, want blr", got.LocationQuery)
	}
	if got.SizeMin == nil || *got.SizeMin != 20000 {
		t.Errorf("SizeMin = %v, want 20000", got.SizeMin)
	}
	if len(got.NotApplicable) != 1 || got.NotApplicable[0] != "budget_min" {
		t.Errorf("NotApplicable = %v, want [budget_min]", got.NotApplicable)
	}
}
