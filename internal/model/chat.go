package model

// ChatRequest is one turn of the dialogue. The client carries the full
// prior state between turns; a nil context starts a fresh conversation.
type ChatRequest struct {
	Message string            `json:"message"`
	Context *RequirementState `json:"context,omitempty"`
}

// ChatResponse returns the agent reply plus the updated context the client
// must echo back on the next turn.
type ChatResponse struct {
	Message  string            `json:"message"`
	Context  *RequirementState `json:"context"`
	Terminal bool              `json:"terminal"`
}
