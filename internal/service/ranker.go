package service

import (
	"sort"
	"strings"

	"core/internal/model"
)

// Ranker orders warehouses by how well they fit the requested filters.
// The repository already guarantees hard-filter compliance; ranking only
// decides display order within a page and attaches human-readable reasons.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank scores each warehouse against the filters and returns them sorted
// best-first. Score components are additive; ties keep the incoming
// (newest-first) order.
func (r *Ranker) Rank(warehouses []model.Warehouse, filters *model.SearchFilters) []model.WarehouseResult {
	results := make([]model.WarehouseResult, 0, len(warehouses))
	for _, w := range warehouses {
		score, reasons := r.score(&w, filters)
		results = append(results, model.WarehouseResult{
			Warehouse:      w,
			Score:          score,
			MatchedReasons: reasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (r *Ranker) score(w *model.Warehouse, f *model.SearchFilters) (float64, []string) {
	var score float64
	var reasons []string
	if f == nil {
		return 0, nil
	}

	// Rate fit: cheaper within the budget ranks higher.
	if f.RateMax != nil && w.RatePerSqft != nil {
		max := float64(*f.RateMax)
		if *w.RatePerSqft <= max {
			score += 2.0
			if max > 0 {
				score += (max - *w.RatePerSqft) / max // up to +1 for headroom
			}
			reasons = append(reasons, "within budget")
		}
	}

	// Size fit: closer to the requested minimum wastes less space.
	if f.SizeMin != nil && w.TotalSqft != nil && *w.TotalSqft > 0 {
		want := float64(*f.SizeMin)
		have := float64(*w.TotalSqft)
		if have >= want && want > 0 {
			fit := want / have
			score += 2.0 * fit
			if fit > 0.8 {
				reasons = append(reasons, "size match")
			}
		}
	}

	if f.StructureType != nil && w.StructureType != nil &&
		strings.EqualFold(*f.StructureType, *w.StructureType) {
		score += 1.5
		reasons = append(reasons, "structure match")
	}

	if f.MinDocks != nil && w.Docks != nil && *w.Docks >= *f.MinDocks {
		score += 1.0
		reasons = append(reasons, "enough docks")
	}

	if f.FireNOCRequired != nil && *f.FireNOCRequired && w.FireNOC != nil && *w.FireNOC {
		score += 1.0
		reasons = append(reasons, "fire NOC")
	}

	// Direct owner listings edge out broker listings.
	if w.IsBroker != nil && !*w.IsBroker {
		score += 0.5
	}

	return score, reasons
}
