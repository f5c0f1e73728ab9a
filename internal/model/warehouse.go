package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Warehouse represents a warehouse listing
type Warehouse struct {
	ID            int64           `json:"id" db:"id"`
	City          *string         `json:"city,omitempty" db:"city"`
	State         *string         `json:"state,omitempty" db:"state"`
	Address       *string         `json:"address,omitempty" db:"address"`
	TotalSqft     *int            `json:"total_sqft,omitempty" db:"total_sqft"`
	RatePerSqft   *float64        `json:"rate_per_sqft,omitempty" db:"rate_per_sqft"`
	StructureType *string         `json:"structure_type,omitempty" db:"structure_type"` // PEB / RCC
	Docks         *int            `json:"docks,omitempty" db:"docks"`
	ClearHeightFt *int            `json:"clear_height_ft,omitempty" db:"clear_height_ft"`
	Compliances   *string         `json:"compliances,omitempty" db:"compliances"`
	Availability  *string         `json:"availability,omitempty" db:"availability"`
	Zone          *string         `json:"zone,omitempty" db:"zone"`
	IsBroker      *bool           `json:"is_broker,omitempty" db:"is_broker"`
	FireNOC       *bool           `json:"fire_noc,omitempty" db:"fire_noc"`
	LandType      *string         `json:"land_type,omitempty" db:"land_type"`
	Description   *string         `json:"description,omitempty" db:"description"`
	Embedding     pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// WarehouseResult is a warehouse plus ranking metadata for display.
type WarehouseResult struct {
	Warehouse
	Score          float64  `json:"score"`
	MatchedReasons []string `json:"matched_reasons"`
}

// SearchFilters are the structured conditions derived from a confirmed
// RequirementState (or supplied directly by the structured search API).
type SearchFilters struct {
	Cities             []string `json:"cities,omitempty"`
	State              *string  `json:"state,omitempty"`
	SizeMin            *int     `json:"size_min,omitempty"`
	SizeMax            *int     `json:"size_max,omitempty"`
	RateMin            *int     `json:"rate_min,omitempty"`
	RateMax            *int     `json:"rate_max,omitempty"`
	StructureType      *string  `json:"structure_type,omitempty"`
	MinDocks           *int     `json:"min_docks,omitempty"`
	Compliances        *string  `json:"compliances,omitempty"`
	FireNOCRequired    *bool    `json:"fire_noc_required,omitempty"`
	LandTypeIndustrial *bool    `json:"land_type_industrial,omitempty"`
}

// SearchRequest is the direct structured search API request.
type SearchRequest struct {
	Filters *SearchFilters `json:"filters" binding:"required"`
	Page    int            `json:"page"`
}

// SearchResponse is the structured search API response.
type SearchResponse struct {
	SearchID string            `json:"search_id"`
	Results  []WarehouseResult `json:"results"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Relaxed  bool              `json:"relaxed,omitempty"` // budget cap was raised to find results
	Took     int64             `json:"took_ms"`
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding with warehouse info
type EmbeddingItem struct {
	WarehouseID int64     `json:"warehouse_id" binding:"required"`
	Embedding   []float32 `json:"embedding" binding:"required"`
	Text        string    `json:"text,omitempty"` // The text used to generate embedding
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// FeedbackRequest represents a user action on a search result
type FeedbackRequest struct {
	SearchID    string `json:"search_id" binding:"required"`
	WarehouseID int64  `json:"warehouse_id" binding:"required"`
	Action      string `json:"action" binding:"required"` // shortlist, contact, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
