package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `
categories:
  - id: electronics
    name: Electronics
    sub_categories:
      - id: audio
        name: Audio
  - id: home-kitchen
    name: Home & Kitchen
products:
  - id: product-1
    name: Studio Headphones
    category: electronics
    sub_category: audio
    price: 120
    rating: 4.4
    reviews:
      - id: review-1
        user_id: user-1
        username: ana
        rating: 5
        comment: Great sound, love it
        date: "2024-05-01"
  - id: product-2
    name: Electric Kettle
    category: home-kitchen
    price: 35
    rating: 4.8
suggestions:
  product-1:
    - id: ai-suggestion-1
      content: Improve the cable length
      source: ai
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func decodeResult(t *testing.T, raw string) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	return result
}

func TestScore_JSON(t *testing.T) {
	code, stdout, _ := execute(t, "score", "great", "product,", "but", "a", "problem")

	require.Equal(t, 0, code)
	result := decodeResult(t, stdout)
	assert.Equal(t, "score", result["command"])

	res := result["results"].(map[string]any)
	assert.Equal(t, "great product, but a problem", res["text"])
	s := res["sentiment"].(map[string]any)
	assert.InDelta(t, 0.5, s["positive"], 1e-9)
	assert.InDelta(t, 0.5, s["negative"], 1e-9)
	assert.Equal(t, "neutral", s["overall"])
}

func TestScore_Text(t *testing.T) {
	code, stdout, _ := execute(t, "--format", "text", "score", "terrible, broken on arrival")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Overall: negative")
	assert.Contains(t, stdout, "Negative matches: terrible, broken")
	assert.Contains(t, stdout, "Positive matches: -")
}

func TestScore_RequiresText(t *testing.T) {
	code, _, stderr := execute(t, "score")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestInvalidFormat(t *testing.T) {
	code, _, stderr := execute(t, "--format", "yaml", "score", "ok")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `invalid format "yaml"`)
}

func TestSearch(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", writeFixture(t), "search", "KETTLE")

	require.Equal(t, 0, code)
	result := decodeResult(t, stdout)
	assert.EqualValues(t, 1, result["total_count"])
	products := result["results"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "product-2", products[0].(map[string]any)["id"])
}

func TestSearch_Text(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", writeFixture(t), "--format", "text", "search", "electronics")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "ID")
	assert.Contains(t, stdout, "Studio Headphones")
	assert.NotContains(t, stdout, "Electric Kettle")
}

func TestSearch_EmbeddedCatalog(t *testing.T) {
	code, stdout, _ := execute(t, "search", "")

	require.Equal(t, 0, code)
	assert.EqualValues(t, 18, decodeResult(t, stdout)["total_count"])
}

func TestFilter(t *testing.T) {
	fixture := writeFixture(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"category", []string{"--category", "home-kitchen"}, 1},
		{"subcategory", []string{"--subcategory", "audio"}, 1},
		{"max price", []string{"--max-price", "100"}, 1},
		{"min rating", []string{"--min-rating", "4.5"}, 1},
		{"none", nil, 2},
		{"no match", []string{"--category", "electronics", "--min-rating", "4.5"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--fixture", fixture, "filter"}, tt.args...)
			code, stdout, _ := execute(t, args...)

			require.Equal(t, 0, code)
			assert.EqualValues(t, tt.want, decodeResult(t, stdout)["total_count"])
		})
	}
}

func TestFilter_InvalidRating(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", writeFixture(t), "filter", "--min-rating", "7")

	assert.Equal(t, 1, code)
	assert.Contains(t, decodeResult(t, stdout)["error"], "min-rating")
}

func TestProduct(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", writeFixture(t), "product", "product-1")

	require.Equal(t, 0, code)
	res := decodeResult(t, stdout)["results"].(map[string]any)
	assert.Equal(t, "Studio Headphones", res["product"].(map[string]any)["name"])
	assert.Equal(t, "positive", res["sentiment"].(map[string]any)["overall"])

	suggestions := res["suggestions"].([]any)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "negative", suggestions[0].(map[string]any)["sentiment"])
}

func TestProduct_NoReviewsHasNullSentiment(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", writeFixture(t), "product", "product-2")

	require.Equal(t, 0, code)
	res := decodeResult(t, stdout)["results"].(map[string]any)
	assert.Nil(t, res["sentiment"])
}

func TestProduct_NotFound(t *testing.T) {
	code, stdout, stderr := execute(t, "--fixture", writeFixture(t), "product", "product-404")

	assert.Equal(t, 1, code)
	assert.Contains(t, decodeResult(t, stdout)["error"], "not found")
	assert.Empty(t, stderr)
}

func TestProduct_NotFoundText(t *testing.T) {
	code, stdout, stderr := execute(t, "--fixture", writeFixture(t), "--format", "text", "product", "product-404")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, 1, bytes.Count([]byte(stderr), []byte("Error:")))
}

func TestProduct_Text(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", writeFixture(t), "--format", "text", "product", "product-1")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Studio Headphones (product-1)")
	assert.Contains(t, stdout, "Review sentiment: positive")
	assert.Contains(t, stdout, "Improve the cable length")
}

func TestTopRated(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", writeFixture(t), "top-rated", "--limit", "1")

	require.Equal(t, 0, code)
	products := decodeResult(t, stdout)["results"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "product-2", products[0].(map[string]any)["id"])
}

func TestMissingFixture(t *testing.T) {
	code, stdout, _ := execute(t, "--fixture", filepath.Join(t.TempDir(), "missing.yaml"), "search", "x")

	assert.Equal(t, 1, code)
	assert.Contains(t, decodeResult(t, stdout)["error"], "open fixture")
}
