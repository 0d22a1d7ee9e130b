package nextract

import (
	"context"
	"time"
)

// Extraction is a persisted record of one extraction run over a source
// document.
type Extraction struct {
	ID          string            `json:"id"`
	SourceURL   string            `json:"sourceUrl"`
	ContentHash string            `json:"contentHash"`
	Report      *ExtractionReport `json:"report"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.SourceURL == "" {
		return Errorf(EINVALID, "extraction source URL required")
	}
	if e.Report == nil {
		return Errorf(EINVALID, "extraction report required")
	}
	return nil
}

// ExtractionService represents a service for managing persisted extraction
// runs.
type ExtractionService interface {
	// CreateExtraction stores a new extraction run.
	CreateExtraction(ctx context.Context, extraction *Extraction) error

	// FindExtractionByID retrieves an extraction by ID.
	// Returns ENOTFOUND if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtraction permanently removes an extraction.
	// Returns ENOTFOUND if the extraction does not exist.
	DeleteExtraction(ctx context.Context, id string) error
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	ID          *string `json:"id"`
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
