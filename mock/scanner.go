package mock

import "github.com/awalczak/nextract"

var _ nextract.Scanner = (*Scanner)(nil)

// Scanner is a mock implementation of nextract.Scanner.
type Scanner struct {
	ScanChunksFn func(text string) ([]nextract.Chunk, []nextract.Warning)
}

func (s *Scanner) ScanChunks(text string) ([]nextract.Chunk, []nextract.Warning) {
	return s.ScanChunksFn(text)
}
