package utils

import "strings"

// structureAliases maps free-form structure mentions to the canonical
// warehouse structure types stored in the database.
var structureAliases = map[string][]string{
	"PEB": {"peb", "pre-engineered", "pre engineered", "steel structure", "metal building"},
	"RCC": {"rcc", "concrete", "cement", "reinforced concrete", "brick"},
}

// complianceAliases maps shorthand compliance mentions to the canonical
// terms used in the compliances column. Checked in order so "fire safety"
// resolves to fire, not the generic safety bucket.
var complianceAliases = []struct {
	canonical string
	aliases   []string
}{
	{"fire", []string{"fire noc", "fire safety", "fire compliance", "noc"}},
	{"environmental", []string{"environmental", "pollution control", "pollution"}},
	{"safety", []string{"safety", "osha"}},
}

// NormalizeStructureType maps a free-form structure mention to "PEB" or
// "RCC". Returns "" when the text names neither (any/flexible).
func NormalizeStructureType(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ""
	}
	for canonical, aliases := range structureAliases {
		if strings.EqualFold(lower, canonical) {
			return canonical
		}
		for _, alias := range aliases {
			if strings.Contains(lower, alias) {
				return canonical
			}
		}
	}
	return ""
}

// NormalizeCompliance maps a compliance mention to the canonical search
// term, or returns the trimmed input when no alias matches.
func NormalizeCompliance(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ""
	}
	for _, entry := range complianceAliases {
		for _, alias := range entry.aliases {
			if strings.Contains(lower, alias) {
				return entry.canonical
			}
		}
	}
	return strings.TrimSpace(text)
}

// ContainsWholeWord reports whether word occurs in text delimited by
// non-letter boundaries. Matching is case-insensitive.
func ContainsWholeWord(text, word string) bool {
	text = strings.ToLower(text)
	word = strings.ToLower(word)

	idx := 0
	for {
		pos := strings.Index(text[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)

		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
