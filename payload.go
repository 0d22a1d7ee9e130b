package nextract

import (
	"fmt"
	"sort"
	"strings"
)

// Payload is the reassembled text of one hydration stream.
type Payload struct {
	// Stream is the identifier shared by the joined chunks.
	Stream string `json:"stream"`

	// Text is the concatenation of the chunk fragments in index order.
	Text string `json:"text"`

	// Fragments is the number of chunks joined into Text.
	Fragments int `json:"fragments"`

	// Positions holds the source positions of the joined chunks, in
	// index order.
	Positions []int `json:"positions"`
}

// Assemble groups chunks by stream, orders each group by index ascending
// (ties broken by arrival order), and joins the fragment text into one
// Payload per stream. Streams are returned in order of first appearance.
// Gaps in the index sequence do not block reassembly; a duplicate index
// within a stream keeps the first occurrence and discards later ones with
// a warning.
func Assemble(chunks []Chunk) ([]Payload, []Warning) {
	var order []string
	groups := make(map[string][]Chunk)
	seen := make(map[string]map[int]bool)
	var warnings []Warning

	for _, c := range chunks {
		if _, ok := groups[c.Stream]; !ok {
			order = append(order, c.Stream)
			seen[c.Stream] = make(map[int]bool)
		}
		if seen[c.Stream][c.Index] {
			warnings = append(warnings, Warning{
				Code:     WarnDuplicateChunk,
				Message:  fmt.Sprintf("duplicate chunk index %d in stream %q", c.Index, c.Stream),
				Position: c.Position,
			})
			continue
		}
		seen[c.Stream][c.Index] = true
		groups[c.Stream] = append(groups[c.Stream], c)
	}

	payloads := make([]Payload, 0, len(order))
	for _, stream := range order {
		group := groups[stream]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Index < group[j].Index
		})

		var sb strings.Builder
		positions := make([]int, 0, len(group))
		for _, c := range group {
			sb.WriteString(c.RawText)
			positions = append(positions, c.Position)
		}
		payloads = append(payloads, Payload{
			Stream:    stream,
			Text:      sb.String(),
			Fragments: len(group),
			Positions: positions,
		})
	}
	return payloads, warnings
}
