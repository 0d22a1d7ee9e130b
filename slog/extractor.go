// Package slog provides logging decorators for nextract interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/awalczak/nextract"
)

// Ensure LoggingExtractor implements nextract.Extractor.
var _ nextract.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with structured logging.
type LoggingExtractor struct {
	next   nextract.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next nextract.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractChunks delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractChunks(text string) (chunks []nextract.Chunk, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract chunks",
			"bytes", len(text),
			"chunks", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractChunks(text)
}

// Extract delegates to the wrapped extractor and logs the report summary.
func (e *LoggingExtractor) Extract(text string) (report *nextract.ExtractionReport, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		}
		if report != nil {
			attrs = append(attrs,
				"chunks", report.ChunksSeen,
				"payloads", report.PayloadsAssembled,
				"failures", report.ParseFailures,
				"warnings", len(report.Warnings),
			)
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(text)
}
