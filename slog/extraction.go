package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/awalczak/nextract"
)

// Ensure LoggingExtractionService implements nextract.ExtractionService.
var _ nextract.ExtractionService = (*LoggingExtractionService)(nil)

// LoggingExtractionService wraps an ExtractionService with debug logging.
type LoggingExtractionService struct {
	next   nextract.ExtractionService
	logger *slog.Logger
}

// NewLoggingExtractionService creates a new LoggingExtractionService.
func NewLoggingExtractionService(next nextract.ExtractionService, logger *slog.Logger) *LoggingExtractionService {
	return &LoggingExtractionService{next: next, logger: logger}
}

// CreateExtraction delegates to the wrapped service and logs the operation.
func (s *LoggingExtractionService) CreateExtraction(ctx context.Context, extraction *nextract.Extraction) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create extraction",
			"id", extraction.ID,
			"url", extraction.SourceURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateExtraction(ctx, extraction)
}

// FindExtractionByID delegates to the wrapped service.
func (s *LoggingExtractionService) FindExtractionByID(ctx context.Context, id string) (*nextract.Extraction, error) {
	return s.next.FindExtractionByID(ctx, id)
}

// FindExtractions delegates to the wrapped service and logs the operation.
func (s *LoggingExtractionService) FindExtractions(ctx context.Context, filter nextract.ExtractionFilter) (extractions []*nextract.Extraction, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find extractions",
			"count", len(extractions),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindExtractions(ctx, filter)
}

// DeleteExtraction delegates to the wrapped service and logs the operation.
func (s *LoggingExtractionService) DeleteExtraction(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete extraction",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteExtraction(ctx, id)
}
