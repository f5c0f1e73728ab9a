package model

// Field names used to tag corrections and not-applicable markers in an
// extraction result. They match the JSON keys the extractor prompts for.
const (
	FieldLocation      = "location_query"
	FieldSizeMin       = "size_min"
	FieldSizeMax       = "size_max"
	FieldBudgetMin     = "budget_min"
	FieldBudgetMax     = "budget_max"
	FieldLandType      = "land_type_industrial"
	FieldFireNOC       = "fire_noc_required"
	FieldStructureType = "structure_type"
	FieldLoadingDocks  = "loading_docks"
	FieldOtherSpecs    = "other_specs"
)

// Extraction is the partial field update produced by the field extractor
// for a single user turn. Every field is optional; absence means the
// extractor found nothing for it. The core treats all of it as untrusted.
type Extraction struct {
	LocationQuery      *string `json:"location_query,omitempty"`
	SizeMin            *int    `json:"size_min,omitempty"`
	SizeMax            *int    `json:"size_max,omitempty"`
	BudgetMin          *int    `json:"budget_min,omitempty"`
	BudgetMax          *int    `json:"budget_max,omitempty"`
	LandTypeIndustrial *bool   `json:"land_type_industrial,omitempty"`
	FireNOCRequired    *bool   `json:"fire_noc_required,omitempty"`
	StructureType      *string `json:"structure_type,omitempty"`
	LoadingDocks       *string `json:"loading_docks,omitempty"`
	OtherSpecs         *string `json:"other_specs,omitempty"`

	// NotApplicable lists fields the user explicitly declined
	// ("none", "not needed"). Distinct from absence.
	NotApplicable []string `json:"not_applicable,omitempty"`

	// Corrections lists fields the user intentionally overrode
	// ("change budget to 30"). Only a correction may replace an
	// already-set value.
	Corrections []string `json:"corrections,omitempty"`
}

// IsCorrection reports whether the extraction flags field as an explicit
// user override.
func (e *Extraction) IsCorrection(field string) bool {
	for _, f := range e.Corrections {
		if f == field {
			return true
		}
	}
	return false
}

// MarkedNotApplicable reports whether the user explicitly declined field.
func (e *Extraction) MarkedNotApplicable(field string) bool {
	for _, f := range e.NotApplicable {
		if f == field {
			return true
		}
	}
	return false
}

// Empty reports whether the extraction carries no field values at all.
func (e *Extraction) Empty() bool {
	return e.LocationQuery == nil && e.SizeMin == nil && e.SizeMax == nil &&
		e.BudgetMin == nil && e.BudgetMax == nil &&
		e.LandTypeIndustrial == nil && e.FireNOCRequired == nil &&
		e.StructureType == nil && e.LoadingDocks == nil && e.OtherSpecs == nil &&
		len(e.NotApplicable) == 0
}
