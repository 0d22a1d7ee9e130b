package goquery

import (
	"github.com/awalczak/nextract"
)

// Ensure Extractor implements nextract.Extractor at compile time.
var _ nextract.Extractor = (*Extractor)(nil)

// Extractor runs the full extraction pipeline: scan, reassemble, parse.
type Extractor struct {
	scanner nextract.Scanner
}

// NewExtractor creates an Extractor backed by the goquery scanner.
func NewExtractor() *Extractor {
	return &Extractor{scanner: NewScanner()}
}

// ExtractChunks returns the raw chunk records in document order.
func (e *Extractor) ExtractChunks(text string) ([]nextract.Chunk, error) {
	chunks, _ := e.scanner.ScanChunks(text)
	return chunks, nil
}

// Extract scans text for hydration markers, reassembles the streams, and
// parses each payload. Warnings and parse failures are recorded in the
// report rather than aborting the run.
func (e *Extractor) Extract(text string) (*nextract.ExtractionReport, error) {
	chunks, warnings := e.scanner.ScanChunks(text)
	payloads, assemblyWarnings := nextract.Assemble(chunks)
	warnings = append(warnings, assemblyWarnings...)

	report := &nextract.ExtractionReport{
		Warnings:          warnings,
		ChunksSeen:        len(chunks),
		PayloadsAssembled: len(payloads),
	}
	for _, p := range payloads {
		res := nextract.ParsePayload(p)
		if res.Kind == nextract.KindUnparseable {
			report.ParseFailures++
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}
