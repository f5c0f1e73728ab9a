package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"core/internal/model"
	"core/internal/utils"
)

// FieldExtractor converts a free-form user turn into a partial update of
// the fields expected at the given stage. Implementations are
// non-deterministic and untrusted; the stage policy merges defensively.
type FieldExtractor interface {
	Extract(ctx context.Context, stage model.Stage, text string) (*model.Extraction, error)
}

// AIFieldExtractor extracts structured requirement fields using the chat
// model, scoped to the fields the current stage expects.
type AIFieldExtractor struct {
	client ChatClient
}

// NewAIFieldExtractor creates a new extractor backed by the chat client.
func NewAIFieldExtractor(client ChatClient) *AIFieldExtractor {
	return &AIFieldExtractor{client: client}
}

// Words the user uses to decline all optional specifics at once.
var declineReplies = map[string]bool{
	"none": true, "no": true, "nothing": true,
	"no requirements": true, "that's all": true, "nope": true,
}

// Words that signal the user is deliberately overriding a set field.
var correctionWords = []string{"change", "make", "set", "update", "switch"}

// Extract implements FieldExtractor.
func (e *AIFieldExtractor) Extract(ctx context.Context, stage model.Stage, text string) (*model.Extraction, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &model.Extraction{}, nil
	}

	// Land type answers are plain keyword territory; no model call needed.
	if stage == model.StageLandType {
		return extractLandType(trimmed), nil
	}

	// A blanket decline in the specifics stage marks every optional field
	// not applicable without a model round trip.
	if stage == model.StageSpecifics && declineReplies[strings.ToLower(trimmed)] {
		return &model.Extraction{
			NotApplicable: []string{model.FieldStructureType, model.FieldLoadingDocks, model.FieldOtherSpecs},
		}, nil
	}

	if e.client == nil || !e.client.IsEnabled() {
		log.Printf("Chat model is not enabled, skipping extraction. Please set OPENAI_API_KEY environment variable.")
		return &model.Extraction{}, nil
	}

	systemPrompt, ok := stagePrompts[stage]
	if !ok {
		// Confirmation turns still accept corrections to specifics fields.
		systemPrompt = stagePrompts[model.StageSpecifics]
	}

	resp, err := e.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Extract requirements: " + trimmed},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("field extraction failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("field extraction returned no choices")
	}

	var extraction model.Extraction
	if err := utils.ParseAIJSON(resp.Choices[0].Message.Content, &extraction); err != nil {
		// Malformed model output is an extraction anomaly, not a turn
		// failure; the caller keeps prior values and re-prompts.
		log.Printf("Warning: discarding malformed extraction output: %v", err)
		return &model.Extraction{}, nil
	}

	sanitizeExtraction(&extraction, trimmed)
	return &extraction, nil
}

// extractLandType classifies a land-type reply with keywords, the way the
// rest of the funnel treats this binary question. An answer that names
// neither side resolves to commercial/flexible so the stage cannot wedge.
func extractLandType(text string) *model.Extraction {
	lower := strings.ToLower(text)

	industrial := false
	switch {
	case containsAny(lower, "industrial", "manufacturing", "processing", "chemical"):
		industrial = true
	case containsAny(lower, "commercial", "distribution", "storage", "retail"):
		industrial = false
	case utils.ContainsWholeWord(lower, "yes"):
		industrial = true
	case utils.ContainsWholeWord(lower, "no"):
		industrial = false
	}

	ext := &model.Extraction{LandTypeIndustrial: &industrial}
	if containsAny(lower, correctionWords...) {
		ext.Corrections = append(ext.Corrections, model.FieldLandType)
	}
	return ext
}

// sanitizeExtraction drops contradictory or hallucinated values and
// supplements the model's correction tags with the obvious keyword cases.
func sanitizeExtraction(ext *model.Extraction, text string) {
	lower := strings.ToLower(text)

	// Negative quantities are extractor noise, never valid input.
	for _, v := range []**int{&ext.SizeMin, &ext.SizeMax, &ext.BudgetMin, &ext.BudgetMax} {
		if *v != nil && **v < 0 {
			*v = nil
		}
	}

	// A structure type outside the known classes is discarded.
	if ext.StructureType != nil {
		if canonical := utils.NormalizeStructureType(*ext.StructureType); canonical != "" {
			ext.StructureType = &canonical
		} else {
			ext.StructureType = nil
		}
	}

	// "change budget to 30" style turns are corrections even when the
	// model forgets to tag them.
	if containsAny(lower, correctionWords...) {
		if (ext.BudgetMin != nil || ext.BudgetMax != nil) && containsAny(lower, "budget", "price", "rate", "cost") {
			ext.Corrections = appendMissing(ext.Corrections, model.FieldBudgetMin, model.FieldBudgetMax)
		}
		if (ext.SizeMin != nil || ext.SizeMax != nil) && containsAny(lower, "size", "sqft", "space", "area") {
			ext.Corrections = appendMissing(ext.Corrections, model.FieldSizeMin, model.FieldSizeMax)
		}
		if ext.LocationQuery != nil && containsAny(lower, "city", "location", "place") {
			ext.Corrections = appendMissing(ext.Corrections, model.FieldLocation)
		}
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if utils.ContainsWholeWord(text, w) {
			return true
		}
	}
	return false
}

func appendMissing(list []string, fields ...string) []string {
	for _, f := range fields {
		found := false
		for _, existing := range list {
			if existing == f {
				found = true
				break
			}
		}
		if !found {
			list = append(list, f)
		}
	}
	return list
}

// stagePrompts scope extraction to the fields each stage expects.
var stagePrompts = map[model.Stage]string{
	model.StageLocationSize: `You extract warehouse requirements from user messages.
Return ONLY a raw JSON object:
{"location_query": null, "size_min": null, "size_max": null, "corrections": []}

Instructions:
1. location_query: extract city/state/region names as given by the user
2. size: square feet; handle ranges, "up to" (size_max only), "at least" (size_min only), single numbers (set both size_min and size_max to it), "k" abbreviations (50k = 50000)
3. If the user says "any size" or "all warehouses", leave size fields null
4. corrections: list field names the user is explicitly changing ("change city to Pune" -> ["location_query"])
5. Omit or null every field not mentioned`,

	model.StageSpecifics: `You extract warehouse requirements from user messages.
Return ONLY a raw JSON object:
{"budget_min": null, "budget_max": null, "fire_noc_required": null, "structure_type": null, "loading_docks": null, "other_specs": null, "not_applicable": [], "corrections": []}

Instructions:
1. budget: rupees per sqft; ranges like "20-50", "between 30 and 60"; "up to 40" -> budget_max; "at least 25" -> budget_min; a bare single number -> budget_max
2. fire_noc_required: true if fire NOC/fire compliance is wanted, false if explicitly not wanted
3. structure_type: "PEB" (pre-engineered, steel, metal) or "RCC" (concrete, cement, brick); null for any/flexible
4. loading_docks: the dock requirement as stated, e.g. "3" or "at least 5"
5. other_specs: remaining requirements verbatim (availability, zone, compliances, broker preference)
6. not_applicable: field names the user explicitly declines ("no docks needed" -> ["loading_docks"])
7. corrections: field names the user is explicitly changing ("change budget to 30" -> ["budget_min","budget_max"])
8. Omit or null every field not mentioned`,
}
