package model

// Stage is the position in the fixed requirement-gathering funnel.
type Stage string

const (
	StageLocationSize Stage = "location_size"
	StageLandType     Stage = "land_type"
	StageSpecifics    Stage = "specifics"
	StageConfirmation Stage = "confirmation"
	StageSearch       Stage = "search"
	StageDone         Stage = "done"
)

// stageOrder fixes the forward-only ordering of the funnel.
var stageOrder = map[Stage]int{
	StageLocationSize: 0,
	StageLandType:     1,
	StageSpecifics:    2,
	StageConfirmation: 3,
	StageSearch:       4,
	StageDone:         5,
}

// Next returns the stage after s in the funnel, or s itself if terminal.
func (s Stage) Next() Stage {
	switch s {
	case StageLocationSize:
		return StageLandType
	case StageLandType:
		return StageSpecifics
	case StageSpecifics:
		return StageConfirmation
	case StageConfirmation:
		return StageSearch
	case StageSearch:
		return StageDone
	}
	return s
}

// Before reports whether s comes strictly before other in the funnel.
func (s Stage) Before(other Stage) bool {
	return stageOrder[s] < stageOrder[other]
}

// Valid reports whether s is one of the known funnel stages.
func (s Stage) Valid() bool {
	_, ok := stageOrder[s]
	return ok
}

// Turn is a single utterance in the conversation history.
type Turn struct {
	Role    string `json:"role"` // "user" or "agent"
	Content string `json:"content"`
}

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// AnswerStatus distinguishes a field the user was never asked about from
// one they explicitly declined. A declined field is never re-prompted.
type AnswerStatus string

const (
	Unanswered    AnswerStatus = "unanswered"
	NotApplicable AnswerStatus = "not_applicable"
	Answered      AnswerStatus = "answered"
)

// SpecAnswer is a tri-state answer for an optional specifics field.
type SpecAnswer struct {
	Status AnswerStatus `json:"status"`
	Value  string       `json:"value,omitempty"`
}

// Set reports whether the answer carries a concrete state, i.e. anything
// other than "never asked".
func (a SpecAnswer) Set() bool {
	return a.Status == Answered || a.Status == NotApplicable
}

// RequirementState is the single mutable record accumulated across one
// conversation. It is exclusively owned by that conversation and travels
// with the client between turns as an opaque context blob.
type RequirementState struct {
	Stage Stage `json:"stage"`

	// Location and size (location_size stage)
	LocationQuery  string   `json:"location_query,omitempty"`
	ResolvedCities []string `json:"resolved_cities,omitempty"`
	ResolvedState  string   `json:"resolved_state,omitempty"`
	// LocationResolveAttempted records that the resolver already ran for
	// the current LocationQuery, so an empty result is not retried every
	// turn. Cleared when the query changes.
	LocationResolveAttempted bool `json:"location_resolve_attempted,omitempty"`
	SizeMin                  *int `json:"size_min,omitempty"`
	SizeMax                  *int `json:"size_max,omitempty"`

	// Land type (land_type stage)
	LandTypeIndustrial *bool `json:"land_type_industrial,omitempty"`

	// Specifics stage
	BudgetMin       *int       `json:"budget_min,omitempty"`
	BudgetMax       *int       `json:"budget_max,omitempty"`
	FireNOCRequired *bool      `json:"fire_noc_required,omitempty"`
	StructureType   SpecAnswer `json:"structure_type"`
	LoadingDocks    SpecAnswer `json:"loading_docks"`
	OtherSpecs      SpecAnswer `json:"other_specs"`

	// Confirmation and search
	RequirementsConfirmed bool   `json:"requirements_confirmed"`
	CurrentPage           int    `json:"current_page,omitempty"`
	LastSearchID          string `json:"last_search_id,omitempty"`

	History []Turn `json:"history,omitempty"`
}

// NewRequirementState returns an empty state positioned at the start of
// the funnel.
func NewRequirementState() *RequirementState {
	return &RequirementState{Stage: StageLocationSize}
}

// AddTurn appends an utterance to the conversation history.
func (s *RequirementState) AddTurn(role, content string) {
	s.History = append(s.History, Turn{Role: role, Content: content})
}

// HasLocation reports whether any location input has been collected.
func (s *RequirementState) HasLocation() bool {
	return s.LocationQuery != "" || len(s.ResolvedCities) > 0 || s.ResolvedState != ""
}

// HasSize reports whether at least one size bound is set.
func (s *RequirementState) HasSize() bool {
	return s.SizeMin != nil || s.SizeMax != nil
}

// ReadyForSearch reports whether the mandatory search fields are present.
func (s *RequirementState) ReadyForSearch() bool {
	return s.HasLocation() && s.HasSize()
}
