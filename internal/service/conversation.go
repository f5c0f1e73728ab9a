package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"core/internal/model"
)

// ClosingMessage ends the conversation after results were delivered.
const ClosingMessage = "Glad I could help! Reach out any time you need another warehouse. 👋"

var pageWords = []string{"more", "next", "show more", "more results", "next page"}

// Conversation drives one requirement-gathering dialogue. It owns no
// state itself; the full state travels with the client and is passed in
// on every turn.
type Conversation struct {
	extractor  FieldExtractor
	locator    LocationResolver
	dispatcher SearchDispatcher
	policy     *StagePolicy
	confirm    *ConfirmationDetector
	pageSize   int
	maxPages   int
}

func NewConversation(
	extractor FieldExtractor,
	locator LocationResolver,
	dispatcher SearchDispatcher,
	confirmLookback, pageSize, maxPages int,
) *Conversation {
	if pageSize <= 0 {
		pageSize = 5
	}
	if maxPages <= 0 {
		maxPages = 10
	}
	return &Conversation{
		extractor:  extractor,
		locator:    locator,
		dispatcher: dispatcher,
		policy:     NewStagePolicy(),
		confirm:    NewConfirmationDetector(confirmLookback),
		pageSize:   pageSize,
		maxPages:   maxPages,
	}
}

// ProcessTurn advances the dialogue by one user utterance. The returned
// state is the input state mutated in place (or a fresh one when prior is
// nil); on error the caller should discard the mutation and resend the
// prior context unchanged so the user can retry.
func (c *Conversation) ProcessTurn(ctx context.Context, prior *model.RequirementState, userText string) (reply string, st *model.RequirementState, terminal bool, err error) {
	if prior == nil {
		st = model.NewRequirementState()
		st.AddTurn(model.RoleAgent, GreetingMessage)
		if strings.TrimSpace(userText) == "" {
			return GreetingMessage, st, false, nil
		}
	} else {
		st = prior
	}
	if !st.Stage.Valid() {
		st.Stage = model.StageLocationSize
	}

	if st.Stage == model.StageDone {
		st.AddTurn(model.RoleUser, userText)
		return c.respond(st, ClosingMessage), st, true, nil
	}

	// Post-search turns either page through results or end the funnel.
	if st.Stage == model.StageSearch {
		return c.afterSearch(ctx, st, userText)
	}

	// Extract before mutating anything, so a failed model call leaves the
	// state untouched for a clean retry.
	ext, err := c.extractor.Extract(ctx, st.Stage, userText)
	if err != nil {
		return "", st, false, fmt.Errorf("extraction failed: %w", err)
	}

	// Confirmation is detected from the reply text, not the extractor.
	if st.Stage == model.StageConfirmation && c.confirm.Detect(st.History, userText) {
		st.RequirementsConfirmed = true
	}

	complete, topic := c.policy.Evaluate(st, userText, ext)

	c.resolveLocation(ctx, st)

	next := Route(st.Stage, st, complete)
	st.Stage = next

	if next == model.StageSearch {
		return c.dispatch(ctx, st)
	}

	if st.Stage == model.StageConfirmation {
		topic = TopicConfirm
	}
	return c.respond(st, RenderPrompt(topic, st)), st, false, nil
}

// afterSearch handles turns arriving while results are on screen.
func (c *Conversation) afterSearch(ctx context.Context, st *model.RequirementState, userText string) (string, *model.RequirementState, bool, error) {
	if isPageRequest(userText) {
		if st.CurrentPage >= c.maxPages {
			st.AddTurn(model.RoleUser, userText)
			return c.respond(st, "That's everything I have — we've reached the last page. Tell me if you'd like to adjust the requirements."), st, false, nil
		}
		st.CurrentPage++
		st.AddTurn(model.RoleUser, userText)

		resp, err := c.dispatcher.Search(ctx, st, st.CurrentPage)
		if err != nil {
			st.CurrentPage--
			return "", st, false, fmt.Errorf("pagination failed: %w", err)
		}
		st.LastSearchID = resp.SearchID
		return c.respond(st, RenderResults(resp, c.pageSize)), st, false, nil
	}

	// Anything else after results closes the funnel.
	st.AddTurn(model.RoleUser, userText)
	st.Stage = Route(st.Stage, st, false)
	return c.respond(st, ClosingMessage), st, true, nil
}

// dispatch runs the first search after confirmation.
func (c *Conversation) dispatch(ctx context.Context, st *model.RequirementState) (string, *model.RequirementState, bool, error) {
	st.CurrentPage = 1
	resp, err := c.dispatcher.Search(ctx, st, 1)
	if err != nil {
		// Step back so a retried turn re-enters via the confirmation path.
		st.Stage = model.StageConfirmation
		st.CurrentPage = 0
		return "", st, false, fmt.Errorf("search dispatch failed: %w", err)
	}
	st.LastSearchID = resp.SearchID
	return c.respond(st, RenderResults(resp, c.pageSize)), st, false, nil
}

// resolveLocation turns the raw location text into cities/state via the
// resolver. Resolution is best effort; failures leave the raw query in
// place and the search falls back to matching it as a city name.
func (c *Conversation) resolveLocation(ctx context.Context, st *model.RequirementState) {
	if c.locator == nil || st.LocationQuery == "" {
		return
	}
	if st.LocationResolveAttempted || len(st.ResolvedCities) > 0 || st.ResolvedState != "" {
		return
	}
	cities, state, err := c.locator.Resolve(ctx, st.LocationQuery)
	if err != nil {
		// Leave the attempted flag unset so a later turn can retry.
		log.Printf("Location resolution failed for %q: %v", st.LocationQuery, err)
		return
	}
	st.LocationResolveAttempted = true
	st.ResolvedCities = cities
	st.ResolvedState = state
}

func (c *Conversation) respond(st *model.RequirementState, message string) string {
	st.AddTurn(model.RoleAgent, message)
	return message
}

func isPageRequest(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	for _, w := range pageWords {
		if trimmed == w {
			return true
		}
	}
	return false
}
