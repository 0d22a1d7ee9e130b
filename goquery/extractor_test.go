package goquery_test

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/awalczak/nextract"
	"github.com/awalczak/nextract/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements nextract.Extractor at compile time.
var _ nextract.Extractor = (*goquery.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("reassembles split JSON across markers", func(t *testing.T) {
		t.Parallel()

		html := `<script>self.__next_f.push(["chunk",0,"{\"a\":1,"])</script>
<script>self.__next_f.push(["chunk",1,"\"b\":2}"])</script>`

		e := goquery.NewExtractor()
		report, err := e.Extract(html)

		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Equal(t, `{"a":1,"b":2}`, report.Results[0].RawText)
		assert.Equal(t, nextract.KindJSON, report.Results[0].Kind)
		assert.Equal(t, map[string]any{"a": 1.0, "b": 2.0}, report.Results[0].Value)
		assert.Equal(t, 2, report.ChunksSeen)
		assert.Equal(t, 1, report.PayloadsAssembled)
		assert.Zero(t, report.ParseFailures)
	})

	t.Run("round-trips embedded JSON values", func(t *testing.T) {
		t.Parallel()

		original := map[string]any{
			"products": []any{
				map[string]any{"id": 1.0, "name": "Gaming Laptop", "price": 1299.99, "inStock": true},
			},
		}
		encoded, err := json.Marshal(original)
		require.NoError(t, err)

		// embed the JSON the way Next.js does: as an escaped JS string
		escaped := strings.ReplaceAll(strings.ReplaceAll(string(encoded), `\`, `\\`), `"`, `\"`)
		html := fmt.Sprintf(`<script>self.__next_f.push([1,"%s"])</script>`, escaped)

		e := goquery.NewExtractor()
		report, err := e.Extract(html)

		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Equal(t, original, report.Results[0].Value)
	})

	t.Run("is order-independent for explicit indices", func(t *testing.T) {
		t.Parallel()

		inOrder := `<script>self.__next_f.push(["s",0,"one"])</script>
<script>self.__next_f.push(["s",1,"two"])</script>
<script>self.__next_f.push(["s",2,"three"])</script>`
		shuffled := `<script>self.__next_f.push(["s",2,"three"])</script>
<script>self.__next_f.push(["s",0,"one"])</script>
<script>self.__next_f.push(["s",1,"two"])</script>`

		e := goquery.NewExtractor()
		a, err := e.Extract(inOrder)
		require.NoError(t, err)
		b, err := e.Extract(shuffled)
		require.NoError(t, err)

		require.Len(t, a.Results, 1)
		require.Len(t, b.Results, 1)
		assert.Equal(t, "onetwothree", a.Results[0].RawText)
		assert.Equal(t, a.Results[0].RawText, b.Results[0].RawText)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		html := `<script>self.__next_f.push([1,"{\"valid\": \"data\"}"])</script>
<script>self.__next_f.push([2,"{broken: json}"])</script>
<script>self.__next_f.push([2,"{broken: json}"])</script>`

		e := goquery.NewExtractor()
		first, err := e.Extract(html)
		require.NoError(t, err)
		second, err := e.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("keeps extracting around a malformed payload", func(t *testing.T) {
		t.Parallel()

		html := `<script>self.__next_f.push([1,"{\"valid\": \"data\"}"])</script>
<script>self.__next_f.push([2,"{\"incomplete\":"])</script>
<script>self.__next_f.push([3,"{\"another\": \"valid\"}"])</script>`

		e := goquery.NewExtractor()
		report, err := e.Extract(html)

		require.NoError(t, err)
		require.Len(t, report.Results, 3)
		assert.Equal(t, 1, report.ParseFailures)

		assert.Equal(t, nextract.KindJSON, report.Results[0].Kind)
		assert.Equal(t, nextract.KindUnparseable, report.Results[1].Kind)
		assert.Equal(t, `{"incomplete":`, report.Results[1].RawText)
		assert.NotEmpty(t, report.Results[1].Err)
		assert.Equal(t, nextract.KindJSON, report.Results[2].Kind)
	})

	t.Run("parses JS object literals via the fallback", func(t *testing.T) {
		t.Parallel()

		html := `<script>self.__next_f.push([4,"{key: 'value', array: [1, 2, 3]}"])</script>`

		e := goquery.NewExtractor()
		report, err := e.Extract(html)

		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Equal(t, nextract.KindLiteral, report.Results[0].Kind)
		assert.Equal(t, map[string]any{
			"key":   "value",
			"array": []any{1.0, 2.0, 3.0},
		}, report.Results[0].Value)
	})

	t.Run("retains colon-separated identifiers", func(t *testing.T) {
		t.Parallel()

		html := `<script>self.__next_f.push([3,"api_key:{\"response\":{\"status\":\"ok\"}}"])</script>`

		e := goquery.NewExtractor()
		report, err := e.Extract(html)

		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Equal(t, "api_key", report.Results[0].Identifier)
		assert.Equal(t, nextract.KindJSON, report.Results[0].Kind)
	})

	t.Run("supports search over the report", func(t *testing.T) {
		t.Parallel()

		html := `<script>self.__next_f.push([1,"{\"product\": {\"price\": 19.99}}"])</script>`

		e := goquery.NewExtractor()
		report, err := e.Extract(html)
		require.NoError(t, err)

		matches := slices.Collect(report.Search("price", true))

		require.Len(t, matches, 1)
		assert.Equal(t, "product.price", matches[0].Path)
		assert.Equal(t, 19.99, matches[0].Value)
	})

	t.Run("returns an empty report for input without markers", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		report, err := e.Extract("<html><body><p>No hydration here.</p></body></html>")

		require.NoError(t, err)
		assert.Empty(t, report.Results)
		assert.Zero(t, report.ChunksSeen)
	})
}

func TestExtractor_ExtractChunks(t *testing.T) {
	t.Parallel()

	t.Run("returns raw chunk records in document order", func(t *testing.T) {
		t.Parallel()

		html := `<script>self.__next_f.push([2,"later"])</script>
<script>self.__next_f.push([1,"earlier"])</script>`

		e := goquery.NewExtractor()
		chunks, err := e.ExtractChunks(html)

		require.NoError(t, err)
		require.Len(t, chunks, 2)
		assert.Equal(t, "2", chunks[0].Stream)
		assert.Equal(t, "later", chunks[0].RawText)
		assert.Equal(t, "1", chunks[1].Stream)
	})
}
