package service

import (
	"core/internal/model"
)

// Route maps (current stage, state, completion) to the next stage. The
// table is evaluated in order; anything unmatched remains in place, which
// is the safe default preventing silent stage skips. Stages only ever
// move forward.
func Route(stage model.Stage, st *model.RequirementState, stageComplete bool) model.Stage {
	switch {
	case stage == model.StageConfirmation && st.RequirementsConfirmed && st.ReadyForSearch():
		return model.StageSearch
	case stage == model.StageSearch:
		// Search has just executed; the funnel ends.
		return model.StageDone
	case stageComplete:
		return stage.Next()
	default:
		return stage
	}
}
