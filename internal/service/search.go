package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"core/internal/model"
	"core/internal/repository"
	"core/internal/utils"

	"github.com/google/uuid"
)

// SearchDispatcher executes a search for a completed requirement state.
// The conversation service holds this interface so turn handling can be
// tested without a database.
type SearchDispatcher interface {
	Search(ctx context.Context, st *model.RequirementState, page int) (*model.SearchResponse, error)
}

// WarehouseSearchService translates requirement states into repository
// queries, ranks the results, and logs every dispatched search.
type WarehouseSearchService struct {
	repo     *repository.PostgresRepository
	ai       ChatClient
	ranker   *Ranker
	pageSize int
	maxPages int
}

var _ SearchDispatcher = (*WarehouseSearchService)(nil)

func NewWarehouseSearchService(repo *repository.PostgresRepository, ai ChatClient, pageSize, maxPages int) *WarehouseSearchService {
	if pageSize <= 0 {
		pageSize = 5
	}
	if maxPages <= 0 {
		maxPages = 10
	}
	return &WarehouseSearchService{
		repo:     repo,
		ai:       ai,
		ranker:   NewRanker(),
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// PageSize exposes the configured page size for display formatting.
func (s *WarehouseSearchService) PageSize() int {
	return s.pageSize
}

// MaxPages exposes the pagination ceiling.
func (s *WarehouseSearchService) MaxPages() int {
	return s.maxPages
}

// BuildFilters derives structured search filters from a requirement
// state. Resolved cities win over the raw location text; the raw text is
// kept as a city guess when resolution produced nothing.
func (s *WarehouseSearchService) BuildFilters(st *model.RequirementState) *model.SearchFilters {
	filters := &model.SearchFilters{}

	switch {
	case len(st.ResolvedCities) > 0:
		filters.Cities = st.ResolvedCities
	case st.ResolvedState != "":
		state := st.ResolvedState
		filters.State = &state
	case st.LocationQuery != "":
		filters.Cities = []string{st.LocationQuery}
	}

	filters.SizeMin = st.SizeMin
	filters.SizeMax = st.SizeMax
	filters.RateMin = st.BudgetMin
	filters.RateMax = st.BudgetMax
	filters.FireNOCRequired = st.FireNOCRequired
	filters.LandTypeIndustrial = st.LandTypeIndustrial

	if st.StructureType.Status == model.Answered {
		if norm := utils.NormalizeStructureType(st.StructureType.Value); norm != "" {
			filters.StructureType = &norm
		}
	}
	if st.LoadingDocks.Status == model.Answered {
		if n := leadingInt(st.LoadingDocks.Value); n > 0 {
			filters.MinDocks = &n
		}
	}
	if st.OtherSpecs.Status == model.Answered {
		if norm := utils.NormalizeCompliance(st.OtherSpecs.Value); norm != "" {
			filters.Compliances = &norm
		}
	}

	return filters
}

// GetWarehouse fetches a single listing, nil when it does not exist.
func (s *WarehouseSearchService) GetWarehouse(ctx context.Context, id int64) (*model.Warehouse, error) {
	return s.repo.GetWarehouseByID(ctx, id)
}

// Search runs a filtered search for the state, falling back to vector
// similarity when the structured query finds nothing on the first page.
func (s *WarehouseSearchService) Search(ctx context.Context, st *model.RequirementState, page int) (*model.SearchResponse, error) {
	return s.SearchFiltered(ctx, s.BuildFilters(st), page)
}

// SearchFiltered runs a search for explicit filters. Also serves the
// direct structured search API.
func (s *WarehouseSearchService) SearchFiltered(ctx context.Context, filters *model.SearchFilters, page int) (*model.SearchResponse, error) {
	start := time.Now()
	if page < 1 {
		page = 1
	}
	if page > s.maxPages {
		page = s.maxPages
	}

	warehouses, total, relaxed, err := s.repo.SearchWarehouses(ctx, filters, page)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if len(warehouses) == 0 && page == 1 && s.ai != nil && s.ai.IsEnabled() {
		warehouses, err = s.vectorFallback(ctx, filters)
		if err != nil {
			log.Printf("Vector fallback failed: %v", err)
			warehouses = nil
		}
		total = len(warehouses)
	}

	resp := &model.SearchResponse{
		SearchID: uuid.New().String(),
		Results:  s.ranker.Rank(warehouses, filters),
		Total:    total,
		Page:     page,
		Relaxed:  relaxed,
		Took:     time.Since(start).Milliseconds(),
	}

	// Log asynchronously so a slow insert never delays the response.
	go func(took int64) {
		logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.LogSearch(logCtx, resp.SearchID, filters, len(resp.Results), page, int(took)); err != nil {
			log.Printf("Failed to log search %s: %v", resp.SearchID, err)
		}
	}(resp.Took)

	return resp, nil
}

// vectorFallback embeds a textual rendering of the filters and returns
// the nearest listings, dropping the hard size and rate bounds that made
// the structured query come back empty.
func (s *WarehouseSearchService) vectorFallback(ctx context.Context, filters *model.SearchFilters) ([]model.Warehouse, error) {
	queryText := describeFilters(filters)
	if queryText == "" {
		return nil, nil
	}

	embeddings, err := s.ai.CreateEmbeddings(ctx, []string{queryText})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, nil
	}

	loose := &model.SearchFilters{
		Cities:             filters.Cities,
		State:              filters.State,
		LandTypeIndustrial: filters.LandTypeIndustrial,
	}
	return s.repo.VectorSearch(ctx, embeddings[0], loose, s.pageSize)
}

func describeFilters(f *model.SearchFilters) string {
	if f == nil {
		return ""
	}
	var parts []string
	if len(f.Cities) > 0 {
		parts = append(parts, "warehouse in "+strings.Join(f.Cities, ", "))
	} else if f.State != nil {
		parts = append(parts, "warehouse in "+*f.State)
	}
	if f.SizeMin != nil {
		parts = append(parts, fmt.Sprintf("around %d sqft", *f.SizeMin))
	}
	if f.RateMax != nil {
		parts = append(parts, fmt.Sprintf("under %d rupees per sqft", *f.RateMax))
	}
	if f.StructureType != nil {
		parts = append(parts, *f.StructureType+" structure")
	}
	if f.LandTypeIndustrial != nil && *f.LandTypeIndustrial {
		parts = append(parts, "industrial land")
	}
	return strings.Join(parts, ", ")
}

// leadingInt extracts the first unsigned integer embedded in s, or 0.
func leadingInt(s string) int {
	n, seen := 0, false
	for _, r := range s {
		if unicode.IsDigit(r) {
			n = n*10 + int(r-'0')
			seen = true
			continue
		}
		if seen {
			break
		}
	}
	if !seen {
		return 0
	}
	return n
}
