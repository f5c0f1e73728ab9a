package service

import (
	"strings"

	"core/internal/model"
	"core/internal/utils"
)

// ConfirmMarker is the literal question rendered in the confirmation
// prompt. The detector anchors affirmative replies to it, so renderer and
// detector must share this exact string.
const ConfirmMarker = "Proceed with search?"

// affirmations are the replies counted as agreeing to proceed. A reply
// matches when it equals one of these after trimming, or contains one as
// whole words.
var affirmations = []string{
	"yes", "yep", "yeah", "sure", "correct", "confirm", "proceed",
	"go ahead", "sounds good", "looks good", "do it", "start", "ok", "okay",
}

// ConfirmationDetector decides whether an affirmative reply answers the
// rendered "proceed with search?" question rather than some earlier
// yes/no question.
type ConfirmationDetector struct {
	lookback int
}

// NewConfirmationDetector creates a detector scanning the last `lookback`
// turns for the confirmation marker.
func NewConfirmationDetector(lookback int) *ConfirmationDetector {
	if lookback <= 0 {
		lookback = 5
	}
	return &ConfirmationDetector{lookback: lookback}
}

// Detect returns true only when latestUserText is affirmative AND an
// agent turn within the lookback window carries the confirmation marker.
// An affirmative with no marker nearby is answering something else and
// must not trigger a search.
func (d *ConfirmationDetector) Detect(history []model.Turn, latestUserText string) bool {
	if !IsAffirmative(latestUserText) {
		return false
	}

	scanned := 0
	for i := len(history) - 1; i >= 0 && scanned < d.lookback; i-- {
		turn := history[i]
		scanned++
		if turn.Role == model.RoleAgent && strings.Contains(turn.Content, ConfirmMarker) {
			return true
		}
	}
	return false
}

// IsAffirmative classifies a reply as agreement.
func IsAffirmative(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return false
	}
	for _, token := range affirmations {
		if trimmed == token {
			return true
		}
		if utils.ContainsWholeWord(trimmed, token) {
			return true
		}
	}
	return false
}
