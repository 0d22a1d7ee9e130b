// Package goquery implements hydration marker scanning on top of
// PuerkitoBio/goquery.
package goquery

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczak/nextract"
)

// marker is the call prefix Next.js emits for streamed hydration data.
const marker = "self.__next_f.push("

// Ensure Scanner implements nextract.Scanner at compile time.
var _ nextract.Scanner = (*Scanner)(nil)

// Scanner locates self.__next_f.push markers in HTML documents.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ScanChunks returns chunk records in document order. Script tag bodies are
// scanned individually; when no script element carries a marker the raw
// text is scanned directly, so plain-text input works too.
func (s *Scanner) ScanChunks(text string) ([]nextract.Chunk, []nextract.Warning) {
	var sources []string
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
		doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
			if t := sel.Text(); strings.Contains(t, marker) {
				sources = append(sources, t)
			}
		})
	}
	if len(sources) == 0 {
		sources = []string{text}
	}

	st := &scanState{arrival: make(map[string]int)}
	for _, src := range sources {
		st.scanText(src)
	}
	return st.chunks, st.warnings
}

// scanState accumulates chunks across the script bodies of one document.
type scanState struct {
	chunks   []nextract.Chunk
	warnings []nextract.Warning

	// arrival counts payload fragments per stream, used as the implicit
	// assembly index for two-element push markers.
	arrival map[string]int

	// position is the zero-based order of markers in the source.
	position int
}

func (st *scanState) scanText(src string) {
	off := 0
	for {
		i := strings.Index(src[off:], marker)
		if i < 0 {
			return
		}
		start := off + i + len(marker)

		rec, consumed, err := parseMarker(src[start:])
		if err != nil {
			st.warnings = append(st.warnings, nextract.Warning{
				Code:     nextract.WarnMalformedMarker,
				Message:  err.Error(),
				Position: st.position,
			})
			st.position++
			off = start
			continue
		}
		off = start + consumed
		if rec == nil {
			// bootstrap marker, e.g. push([0]); carries no payload
			continue
		}

		index := rec.index
		if !rec.explicit {
			index = st.arrival[rec.stream]
		}
		st.arrival[rec.stream]++
		st.chunks = append(st.chunks, nextract.Chunk{
			Stream:   rec.stream,
			Index:    index,
			RawText:  rec.text,
			Position: st.position,
		})
		st.position++
	}
}

// record is one successfully parsed push marker.
type record struct {
	stream   string
	index    int
	explicit bool
	text     string
}

// parseMarker parses a push argument list starting just past the opening
// parenthesis. It returns the parsed record (nil for payload-less
// bootstrap markers) and the number of bytes consumed including the
// closing parenthesis. Two shapes are recognized:
//
//	[id, "text"]        implicit index (per-stream arrival order)
//	[id, index, "text"] explicit assembly index
func parseMarker(src string) (*record, int, error) {
	p := 0
	skip := func() {
		for p < len(src) && (src[p] == ' ' || src[p] == '\t' || src[p] == '\n' || src[p] == '\r') {
			p++
		}
	}

	skip()
	if p >= len(src) || src[p] != '[' {
		return nil, p, errors.New("expected '[' after push(")
	}
	p++
	skip()

	var stream string
	switch {
	case p < len(src) && (src[p] == '"' || src[p] == '\''):
		s, n, err := nextract.ScanJSString(src[p:])
		if err != nil {
			return nil, p, err
		}
		stream = s
		p += n
	case p < len(src) && (isDigit(src[p]) || src[p] == '-'):
		start := p
		if src[p] == '-' {
			p++
		}
		for p < len(src) && isDigit(src[p]) {
			p++
		}
		stream = src[start:p]
	default:
		return nil, p, errors.New("expected stream identifier")
	}
	skip()

	if p < len(src) && src[p] == ']' {
		p++
		skip()
		if p < len(src) && src[p] == ')' {
			return nil, p + 1, nil
		}
		return nil, p, errors.New("unbalanced marker delimiters")
	}
	if p >= len(src) || src[p] != ',' {
		return nil, p, errors.New("expected ',' after stream identifier")
	}
	p++
	skip()

	rec := &record{stream: stream}
	if p < len(src) && isDigit(src[p]) {
		start := p
		for p < len(src) && isDigit(src[p]) {
			p++
		}
		idx, err := strconv.Atoi(src[start:p])
		if err != nil {
			return nil, p, errors.New("invalid chunk index")
		}
		rec.index = idx
		rec.explicit = true
		skip()
		if p >= len(src) || src[p] != ',' {
			return nil, p, errors.New("expected ',' after chunk index")
		}
		p++
		skip()
	}

	if p >= len(src) || (src[p] != '"' && src[p] != '\'') {
		return nil, p, errors.New("expected string payload")
	}
	s, n, err := nextract.ScanJSString(src[p:])
	if err != nil {
		return nil, p, err
	}
	rec.text = s
	p += n
	skip()

	if p >= len(src) || src[p] != ']' {
		return nil, p, errors.New("unbalanced marker delimiters")
	}
	p++
	skip()
	if p >= len(src) || src[p] != ')' {
		return nil, p, errors.New("unbalanced marker delimiters")
	}
	return rec, p + 1, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
