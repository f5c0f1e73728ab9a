package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"core/internal/utils"
)

// LocationResolver expands an abbreviation or partial place name into
// canonical names. Resolution failure is never fatal: search falls back
// to the raw query.
type LocationResolver interface {
	Resolve(ctx context.Context, rawLocation string) (cities []string, state string, err error)
}

// AILocationResolver resolves locations with the chat model.
type AILocationResolver struct {
	client ChatClient
}

// NewAILocationResolver creates a new resolver backed by the chat client.
func NewAILocationResolver(client ChatClient) *AILocationResolver {
	return &AILocationResolver{client: client}
}

const locationPrompt = `You are a geography expert. Analyze the user's location query and determine its type (city, state, or sub-region).
Return ONLY a raw JSON object: {"cities": null, "state": null}
1. If the query is a recognized state (e.g. "Tamil Nadu", "Karnataka"), populate "state" with the canonical name and leave "cities" null.
2. If the query is a city, alias, or abbreviation (e.g. "blr", "Chennai"), populate "cities" with a list of the canonical name and common aliases and leave "state" null.
3. If the query is a sub-region (e.g. "South Karnataka"), populate "cities" with the major hub cities in that region and leave "state" null.`

// Resolve implements LocationResolver.
func (r *AILocationResolver) Resolve(ctx context.Context, rawLocation string) ([]string, string, error) {
	rawLocation = strings.TrimSpace(rawLocation)
	if rawLocation == "" {
		return nil, "", nil
	}

	if r.client == nil || !r.client.IsEnabled() {
		return nil, "", nil
	}

	resp, err := r.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: locationPrompt},
			{Role: "user", Content: "User's location query: " + rawLocation},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("location analysis failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, "", fmt.Errorf("location analysis returned no choices")
	}

	var analysis struct {
		Cities []string `json:"cities"`
		State  string   `json:"state"`
	}
	if err := utils.ParseAIJSON(resp.Choices[0].Message.Content, &analysis); err != nil {
		log.Printf("Warning: discarding malformed location analysis: %v", err)
		return nil, "", nil
	}

	return analysis.Cities, analysis.State, nil
}
