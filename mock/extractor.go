package mock

import "github.com/awalczak/nextract"

var _ nextract.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of nextract.Extractor.
type Extractor struct {
	ExtractFn       func(text string) (*nextract.ExtractionReport, error)
	ExtractChunksFn func(text string) ([]nextract.Chunk, error)
}

func (e *Extractor) Extract(text string) (*nextract.ExtractionReport, error) {
	return e.ExtractFn(text)
}

func (e *Extractor) ExtractChunks(text string) ([]nextract.Chunk, error) {
	return e.ExtractChunksFn(text)
}
