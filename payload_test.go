package nextract_test

import (
	"testing"

	"github.com/awalczak/nextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("joins chunks of one stream in index order", func(t *testing.T) {
		t.Parallel()

		chunks := []nextract.Chunk{
			{Stream: "1", Index: 0, RawText: `{"a":1,`, Position: 0},
			{Stream: "1", Index: 1, RawText: `"b":2}`, Position: 1},
		}

		payloads, warnings := nextract.Assemble(chunks)

		require.Len(t, payloads, 1)
		assert.Empty(t, warnings)
		assert.Equal(t, `{"a":1,"b":2}`, payloads[0].Text)
		assert.Equal(t, "1", payloads[0].Stream)
		assert.Equal(t, 2, payloads[0].Fragments)
		assert.Equal(t, []int{0, 1}, payloads[0].Positions)
	})

	t.Run("is independent of scan order", func(t *testing.T) {
		t.Parallel()

		sorted := []nextract.Chunk{
			{Stream: "1", Index: 0, RawText: "aa"},
			{Stream: "1", Index: 1, RawText: "bb"},
			{Stream: "1", Index: 2, RawText: "cc"},
		}
		shuffled := []nextract.Chunk{sorted[2], sorted[0], sorted[1]}

		fromSorted, _ := nextract.Assemble(sorted)
		fromShuffled, _ := nextract.Assemble(shuffled)

		require.Len(t, fromShuffled, 1)
		assert.Equal(t, fromSorted[0].Text, fromShuffled[0].Text)
		assert.Equal(t, "aabbcc", fromShuffled[0].Text)
	})

	t.Run("tolerates gaps in the index sequence", func(t *testing.T) {
		t.Parallel()

		chunks := []nextract.Chunk{
			{Stream: "1", Index: 0, RawText: "start"},
			{Stream: "1", Index: 7, RawText: "end"},
		}

		payloads, warnings := nextract.Assemble(chunks)

		require.Len(t, payloads, 1)
		assert.Empty(t, warnings)
		assert.Equal(t, "startend", payloads[0].Text)
	})

	t.Run("keeps first occurrence of a duplicate index and warns", func(t *testing.T) {
		t.Parallel()

		chunks := []nextract.Chunk{
			{Stream: "1", Index: 0, RawText: "first", Position: 0},
			{Stream: "1", Index: 0, RawText: "second", Position: 1},
			{Stream: "1", Index: 1, RawText: "-tail", Position: 2},
		}

		payloads, warnings := nextract.Assemble(chunks)

		require.Len(t, payloads, 1)
		assert.Equal(t, "first-tail", payloads[0].Text)
		require.Len(t, warnings, 1)
		assert.Equal(t, nextract.WarnDuplicateChunk, warnings[0].Code)
		assert.Equal(t, 1, warnings[0].Position)
	})

	t.Run("orders streams by first appearance", func(t *testing.T) {
		t.Parallel()

		chunks := []nextract.Chunk{
			{Stream: "3", Index: 0, RawText: "c"},
			{Stream: "1", Index: 0, RawText: "a"},
			{Stream: "3", Index: 1, RawText: "c2"},
			{Stream: "2", Index: 0, RawText: "b"},
		}

		payloads, _ := nextract.Assemble(chunks)

		require.Len(t, payloads, 3)
		assert.Equal(t, "3", payloads[0].Stream)
		assert.Equal(t, "cc2", payloads[0].Text)
		assert.Equal(t, "1", payloads[1].Stream)
		assert.Equal(t, "2", payloads[2].Stream)
	})

	t.Run("returns no payloads for no chunks", func(t *testing.T) {
		t.Parallel()

		payloads, warnings := nextract.Assemble(nil)

		assert.Empty(t, payloads)
		assert.Empty(t, warnings)
	})
}
