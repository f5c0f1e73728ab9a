package service

import (
	"fmt"
	"math/rand"
	"strings"

	"core/internal/model"
)

// GreetingMessage opens a fresh conversation.
const GreetingMessage = "Hi! Let's find the right spot for your business. To begin, where are you looking for a warehouse?"

// ApologyMessage is returned when an external call fails mid-turn; the
// state is left untouched so the user can simply retry.
const ApologyMessage = "Sorry, I hit a snag processing that. Could you try again?"

var locationPrompts = []string{
	"Where should we hunt for warehouses? (City, state, or region)",
	"Great! Which city or region are you eyeing for this warehouse?",
	"Got it — what's the preferred location? (e.g., Bangalore or South India)",
}

var sizePrompts = []string{
	"Roughly how much space are you thinking? (like 50k sqft or a range)",
	"What size works for you? You can give a single number or a range.",
}

const landTypePrompt = "What land classification do you require?\n\n" +
	"• **Industrial CLU**: For manufacturing, processing, chemical operations\n" +
	"• **Commercial**: For distribution, storage, retail operations\n\n" +
	"Please specify: industrial or commercial"

const specificsPrompt = "Additional requirements:\n\n" +
	"• Fire NOC compliance\n" +
	"• Budget range (₹/sqft)\n" +
	"• Structure type (PEB/RCC)\n" +
	"• Loading docks\n" +
	"• Other specifications\n\n" +
	"Please specify your requirements, or type 'none' if not applicable."

// RenderPrompt produces the agent's next question for a topic hint.
func RenderPrompt(topic string, st *model.RequirementState) string {
	switch topic {
	case TopicLocation:
		return locationPrompts[rand.Intn(len(locationPrompts))]
	case TopicSize:
		return sizePrompts[rand.Intn(len(sizePrompts))]
	case TopicLandType:
		return landTypePrompt
	case TopicSpecifics:
		return specificsPrompt
	case TopicConfirm:
		return RenderSummary(st)
	}
	return "What else should I know about your requirements?"
}

// RenderSummary lists every collected requirement and ends with the
// confirmation marker the detector anchors on.
func RenderSummary(st *model.RequirementState) string {
	var parts []string

	if st.LocationQuery != "" {
		parts = append(parts, fmt.Sprintf("📍 Location: **%s**", st.LocationQuery))
	}
	if st.SizeMin != nil || st.SizeMax != nil {
		lo, hi := "0", "any"
		if st.SizeMin != nil {
			lo = fmt.Sprintf("%d", *st.SizeMin)
		}
		if st.SizeMax != nil {
			hi = fmt.Sprintf("%d", *st.SizeMax)
		}
		parts = append(parts, fmt.Sprintf("📦 Size: **%s - %s sqft**", lo, hi))
	}
	switch {
	case st.BudgetMin != nil && st.BudgetMax != nil:
		parts = append(parts, fmt.Sprintf("💰 Budget: **₹%d - ₹%d/sqft**", *st.BudgetMin, *st.BudgetMax))
	case st.BudgetMin != nil:
		parts = append(parts, fmt.Sprintf("💰 Budget: at least **₹%d/sqft**", *st.BudgetMin))
	case st.BudgetMax != nil:
		parts = append(parts, fmt.Sprintf("💰 Budget: up to **₹%d/sqft**", *st.BudgetMax))
	}
	if st.LandTypeIndustrial != nil {
		landType := "Commercial/Flexible"
		if *st.LandTypeIndustrial {
			landType = "Industrial"
		}
		parts = append(parts, fmt.Sprintf("🏭 Land Type: **%s**", landType))
	}
	if st.FireNOCRequired != nil && *st.FireNOCRequired {
		parts = append(parts, "🔥 Fire NOC: **Required**")
	}
	if st.StructureType.Status == model.Answered {
		parts = append(parts, fmt.Sprintf("🏗️ Structure: **%s**", st.StructureType.Value))
	}
	if st.LoadingDocks.Status == model.Answered {
		parts = append(parts, fmt.Sprintf("🚚 Loading Docks: **%s**", st.LoadingDocks.Value))
	}
	if st.OtherSpecs.Status == model.Answered {
		parts = append(parts, fmt.Sprintf("📋 Other: **%s**", st.OtherSpecs.Value))
	}

	return "Hope I captured your requirements well!\n\n" +
		strings.Join(parts, "\n") +
		"\n\n" + ConfirmMarker + " (yes/no)"
}

// RenderResults formats one page of search results for display.
func RenderResults(resp *model.SearchResponse, pageSize int) string {
	if len(resp.Results) == 0 {
		return "🔍 I couldn't find any warehouses matching your exact criteria. " +
			"We could try expanding the location, adjusting the budget, or relaxing size requirements — " +
			"just tell me what to change."
	}

	var b strings.Builder
	if resp.Relaxed {
		b.WriteString("I couldn't find anything at your exact rate, but here are options with a slightly higher rate:\n\n")
	}
	fmt.Fprintf(&b, "Search results - Page %d:\n\n", resp.Page)
	for _, r := range resp.Results {
		fmt.Fprintf(&b, "ID: %d", r.ID)
		if r.City != nil {
			fmt.Fprintf(&b, " | %s", *r.City)
		}
		if r.TotalSqft != nil {
			fmt.Fprintf(&b, " | %d sqft", *r.TotalSqft)
		}
		if r.RatePerSqft != nil {
			fmt.Fprintf(&b, " | ₹%.0f/sqft", *r.RatePerSqft)
		}
		if r.StructureType != nil {
			fmt.Fprintf(&b, " | %s", *r.StructureType)
		}
		if len(r.MatchedReasons) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(r.MatchedReasons, ", "))
		}
		b.WriteString("\n")
	}

	if len(resp.Results) >= pageSize {
		b.WriteString("\n💡 Type **'more'** for additional results.")
	}
	return b.String()
}
