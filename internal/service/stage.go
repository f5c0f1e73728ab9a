package service

import (
	"core/internal/model"
)

// Topic hints returned by the stage policy so the reply renderer knows
// what to ask for next.
const (
	TopicLocation  = "location"
	TopicSize      = "size"
	TopicLandType  = "land_type"
	TopicSpecifics = "specifics"
	TopicConfirm   = "confirm"
)

// StagePolicy merges extraction results into the requirement state and
// decides whether the current stage is complete.
type StagePolicy struct{}

// NewStagePolicy creates a new stage policy.
func NewStagePolicy() *StagePolicy {
	return &StagePolicy{}
}

// Evaluate appends the user's turn to the history, merges the extraction
// into the state field by field, and evaluates the stage's completion
// predicate. The confirmation stage is complete only once the detector
// has set RequirementsConfirmed; this policy never flips that flag.
func (p *StagePolicy) Evaluate(st *model.RequirementState, userText string, ext *model.Extraction) (complete bool, nextTopic string) {
	st.AddTurn(model.RoleUser, userText)

	if ext != nil {
		p.merge(st, ext)
	}

	switch st.Stage {
	case model.StageLocationSize:
		if !st.HasLocation() {
			return false, TopicLocation
		}
		if !st.HasSize() {
			return false, TopicSize
		}
		return true, TopicLandType
	case model.StageLandType:
		if st.LandTypeIndustrial == nil {
			return false, TopicLandType
		}
		return true, TopicSpecifics
	case model.StageSpecifics:
		// All specifics are optional; one extraction pass completes the
		// stage regardless of what it yielded.
		return true, TopicConfirm
	case model.StageConfirmation:
		return st.RequirementsConfirmed, TopicConfirm
	}
	return false, ""
}

// merge applies the extraction to the state. A field already holding a
// concrete value (including an explicit not-applicable) is only replaced
// when the extraction tags that field as an explicit correction.
func (p *StagePolicy) merge(st *model.RequirementState, ext *model.Extraction) {
	if ext.LocationQuery != nil && *ext.LocationQuery != "" {
		if !st.HasLocation() || ext.IsCorrection(model.FieldLocation) {
			st.LocationQuery = *ext.LocationQuery
			// New raw query invalidates earlier resolution.
			st.ResolvedCities = nil
			st.ResolvedState = ""
			st.LocationResolveAttempted = false
		}
	}

	mergeRange(&st.SizeMin, &st.SizeMax, ext.SizeMin, ext.SizeMax,
		ext.IsCorrection(model.FieldSizeMin) || ext.IsCorrection(model.FieldSizeMax))
	mergeRange(&st.BudgetMin, &st.BudgetMax, ext.BudgetMin, ext.BudgetMax,
		ext.IsCorrection(model.FieldBudgetMin) || ext.IsCorrection(model.FieldBudgetMax))

	if ext.LandTypeIndustrial != nil {
		if st.LandTypeIndustrial == nil || ext.IsCorrection(model.FieldLandType) {
			v := *ext.LandTypeIndustrial
			st.LandTypeIndustrial = &v
		}
	}
	if ext.FireNOCRequired != nil {
		if st.FireNOCRequired == nil || ext.IsCorrection(model.FieldFireNOC) {
			v := *ext.FireNOCRequired
			st.FireNOCRequired = &v
		}
	}

	mergeSpec(&st.StructureType, model.FieldStructureType, ext.StructureType, ext)
	mergeSpec(&st.LoadingDocks, model.FieldLoadingDocks, ext.LoadingDocks, ext)
	mergeSpec(&st.OtherSpecs, model.FieldOtherSpecs, ext.OtherSpecs, ext)
}

// mergeRange merges a min/max pair, swapping an inverted range and
// widening an exact value into a ±20% band.
func mergeRange(curMin, curMax **int, newMin, newMax *int, correction bool) {
	if newMin == nil && newMax == nil {
		return
	}
	// The pair is treated as one field: a set bound blocks non-correction
	// updates to either side.
	if (*curMin != nil || *curMax != nil) && !correction {
		return
	}

	lo, hi := newMin, newMax
	if lo != nil && hi != nil {
		if *lo > *hi {
			lo, hi = hi, lo
		}
		if *lo == *hi {
			exact := *lo
			widenedLo := exact * 80 / 100
			widenedHi := exact * 120 / 100
			lo, hi = &widenedLo, &widenedHi
		}
	}

	*curMin, *curMax = nil, nil
	if lo != nil {
		v := *lo
		*curMin = &v
	}
	if hi != nil {
		v := *hi
		*curMax = &v
	}
}

// mergeSpec merges a tri-state specifics answer. Not-applicable is a
// concrete state: once set, only a correction changes it, and it is
// never downgraded back to unanswered.
func mergeSpec(cur *model.SpecAnswer, field string, value *string, ext *model.Extraction) {
	correction := ext.IsCorrection(field)
	if cur.Set() && !correction {
		return
	}
	if value != nil && *value != "" {
		*cur = model.SpecAnswer{Status: model.Answered, Value: *value}
		return
	}
	if ext.MarkedNotApplicable(field) {
		*cur = model.SpecAnswer{Status: model.NotApplicable}
	}
}
