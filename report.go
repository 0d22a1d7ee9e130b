package nextract

import (
	"encoding/json"
	"strings"
)

// ResultKind identifies the parsing strategy that produced a result.
type ResultKind string

// ResultKind values.
const (
	// KindJSON means the payload parsed as strict JSON.
	KindJSON ResultKind = "json"

	// KindLiteral means the payload needed the permissive
	// JavaScript-literal fallback.
	KindLiteral ResultKind = "literal"

	// KindUnparseable means both strategies failed; RawText and Err
	// carry the payload and the reason.
	KindUnparseable ResultKind = "unparseable"
)

// ParsedResult is the structured value obtained from one reassembled
// payload. Results are immutable once produced.
//
// Numbers are float64 throughout, so integers beyond 2^53 lose precision.
// This mirrors the JavaScript runtime the payloads were serialized for and
// is a documented fidelity limit, not a defect.
type ParsedResult struct {
	// Stream is the hydration stream the payload was assembled from.
	Stream string `json:"stream"`

	// Kind records which parsing strategy succeeded, if any.
	Kind ResultKind `json:"kind"`

	// Identifier is the colon-separated prefix found before the payload
	// body, e.g. "api_key" in `api_key:{...}`. Empty when absent.
	Identifier string `json:"identifier,omitempty"`

	// Value holds the parsed data for KindJSON and KindLiteral results.
	Value any `json:"value"`

	// RawText preserves the payload text for every result, so callers
	// can inspect unparseable payloads.
	RawText string `json:"rawText"`

	// Err is the parse failure reason for KindUnparseable results.
	Err string `json:"err,omitempty"`

	// Fragments is the number of chunks the payload was joined from.
	Fragments int `json:"fragments"`

	// Positions holds the source positions of the joined chunks.
	Positions []int `json:"positions"`
}

// ExtractionReport is the output of a single extraction run. It is
// constructed once per call and never mutated afterwards.
type ExtractionReport struct {
	// Results holds one entry per assembled payload, in stream order.
	Results []ParsedResult `json:"results"`

	// Warnings records non-fatal scan and reassembly problems.
	Warnings []Warning `json:"warnings,omitempty"`

	ChunksSeen        int `json:"chunksSeen"`
	PayloadsAssembled int `json:"payloadsAssembled"`
	ParseFailures     int `json:"parseFailures"`
}

// Extractor extracts hydration payloads from raw HTML or text.
type Extractor interface {
	// ExtractChunks returns the raw chunk records in document order.
	ExtractChunks(text string) ([]Chunk, error)

	// Extract runs the full pipeline: scan, reassemble, parse. Warnings
	// and per-payload parse failures are recorded in the report; only a
	// fundamentally invalid input yields an error.
	Extract(text string) (*ExtractionReport, error)
}

// ParsePayload parses one payload into a result. It tries strict JSON
// first; on failure it strips a function-call wrapper and a colon-separated
// identifier prefix and retries, falling back to the permissive literal
// parser. Failures downgrade the result to KindUnparseable, never an error.
func ParsePayload(p Payload) ParsedResult {
	res := ParsedResult{
		Stream:    p.Stream,
		RawText:   p.Text,
		Fragments: p.Fragments,
		Positions: p.Positions,
	}

	var v any
	if err := json.Unmarshal([]byte(p.Text), &v); err == nil {
		res.Kind = KindJSON
		res.Value = v
		return res
	}

	body, identifier := splitIdentifier(stripWrapper(p.Text))
	res.Identifier = identifier
	if body != p.Text {
		if err := json.Unmarshal([]byte(body), &v); err == nil {
			res.Kind = KindJSON
			res.Value = v
			return res
		}
	}

	v, err := ParseLiteral(body)
	if err != nil {
		res.Kind = KindUnparseable
		res.Err = err.Error()
		return res
	}
	res.Kind = KindLiteral
	res.Value = v
	return res
}

// stripWrapper removes a function-call wrapper such as JSON.parse(...)
// around a payload body and returns the inner argument text. A quoted
// argument is decoded, so JSON.parse("{\"a\":1}") exposes the JSON text.
func stripWrapper(text string) string {
	s := strings.TrimSpace(text)
	t := strings.TrimSuffix(s, ";")
	i := 0
	for i < len(t) && (isIdentChar(t[i]) || t[i] == '.') {
		i++
	}
	if i == 0 || i >= len(t) || t[i] != '(' || !strings.HasSuffix(t, ")") {
		return s
	}
	inner := strings.TrimSpace(t[i+1 : len(t)-1])
	if inner == "" {
		return s
	}
	if inner[0] == '"' || inner[0] == '\'' {
		if v, err := ParseLiteral(inner); err == nil {
			if decoded, ok := v.(string); ok {
				return decoded
			}
		}
	}
	return inner
}

// splitIdentifier splits a colon-separated identifier prefix from the
// payload body, e.g. `api_key:{"a":1}` yields ("{\"a\":1}", "api_key").
// The body starts at the first brace or bracket; everything before it,
// minus the separating colon, is the identifier. The identifier itself may
// contain colons (`base64:eyJ0...==:{...}`).
func splitIdentifier(text string) (body, identifier string) {
	idx := strings.IndexAny(text, "{[")
	if idx <= 0 {
		return text, ""
	}
	prefix := strings.TrimSpace(text[:idx])
	if !strings.HasSuffix(prefix, ":") {
		return text, ""
	}
	identifier = strings.TrimSpace(strings.TrimSuffix(prefix, ":"))
	if identifier == "" {
		return text, ""
	}
	return text[idx:], identifier
}
