package nextract

// Chunk is one fragment of a hydration stream as it appeared in the source
// document.
type Chunk struct {
	// Stream identifies the hydration stream the fragment belongs to.
	// Next.js commonly emits numeric identifiers; they are kept as strings.
	Stream string `json:"stream"`

	// Index declares the fragment's position during reassembly. Markers
	// without an explicit index get the per-stream arrival counter.
	Index int `json:"index"`

	// RawText is the decoded payload fragment.
	RawText string `json:"rawText"`

	// Position is the zero-based order of the marker in the source text.
	Position int `json:"position"`
}

// Warning codes recorded during scanning and reassembly.
const (
	WarnMalformedMarker = "malformed_marker"
	WarnDuplicateChunk  = "duplicate_chunk"
)

// Warning records a non-fatal problem encountered during extraction.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Position of the offending marker in the source text, when known.
	Position int `json:"position"`
}

// Scanner locates hydration markers in raw HTML or text.
type Scanner interface {
	// ScanChunks returns chunk records in document order along with any
	// scan warnings. Malformed markers are skipped, never fatal.
	ScanChunks(text string) ([]Chunk, []Warning)
}
