package translationhelps

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchJSON(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "love", r.URL.Query().Get("query"))
		assert.Equal(t, "Romans", r.URL.Query().Get("scope"))
		assert.Equal(t, "book", r.URL.Query().Get("scopeType"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"query": "love",
			"scripture": {
				"matches": [
					{"book": "Romans", "chapter": 8, "verse": 39, "text": "the love of God"},
					{"book": "Romans", "chapter": 13, "verse": 10, "text": "love is the fulfillment"}
				]
			},
			"notes": {"totalCount": 7, "markdown": "seven notes mention love"}
		}`))
	}))

	results, err := client.Search(context.Background(), SearchRequest{Query: "love", Scope: "Romans"})
	require.NoError(t, err)
	require.NotNil(t, results.Scripture)
	assert.Len(t, results.Scripture.Matches, 2)
	assert.Equal(t, 2, results.Scripture.TotalCount)
	require.NotNil(t, results.Notes)
	assert.Equal(t, 7, results.Notes.TotalCount)
	assert.Nil(t, results.Words)
	assert.Equal(t, 9, results.TotalMatches())
}

func TestSearchMarkdownScrapesHits(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown")
		w.Write([]byte("# Results for love\n\n- **Jn 3:16** For God so loved the world\n- **1 Cor 13:4** Love is patient\nnot a hit line\n* **Romans 8:39** the love of God\n"))
	}))

	results, err := client.Search(context.Background(), SearchRequest{Query: "love"})
	require.NoError(t, err)
	require.NotNil(t, results.Scripture)
	require.Len(t, results.Scripture.Matches, 3)

	// Book names are canonicalized when recognized.
	assert.Equal(t, "John", results.Scripture.Matches[0].Book)
	assert.Equal(t, "1 Corinthians", results.Scripture.Matches[1].Book)
	assert.Equal(t, "Romans", results.Scripture.Matches[2].Book)
	assert.Equal(t, 16, results.Scripture.Matches[0].Verse)
	assert.Equal(t, 3, results.Scripture.TotalCount)
	assert.Equal(t, 1, results.Scripture.Breakdown["John"])
}
