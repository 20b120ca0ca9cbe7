package catalog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func testFixture() Fixture {
	return Fixture{
		Categories: []domain.Category{
			{ID: "electronics", Name: "Electronics", SubCategories: []domain.SubCategory{{ID: "audio", Name: "Audio"}, {ID: "wearables", Name: "Wearables"}}},
			{ID: "fashion", Name: "Fashion", SubCategories: []domain.SubCategory{{ID: "mens", Name: "Men's Clothing"}}},
			{ID: "books-media", Name: "Books & Media"},
		},
		Products: []domain.Product{
			{ID: "p1", Name: "Bluetooth AirPods Pro", Category: "electronics", SubCategory: "audio", Price: 9999, Rating: 4.5, Description: "Wireless earbuds"},
			{ID: "p2", Name: "Digital Watch Pro", Category: "electronics", SubCategory: "wearables", Price: 2499, Rating: 4.2, Description: "Heart rate monitoring"},
			{ID: "p3", Name: "Slim Fit Jeans", Category: "fashion", SubCategory: "mens", Price: 1499, Rating: 4.2, Description: "Stretchable denim"},
			{ID: "p4", Name: "Paperback Novel", Category: "books-media", Price: 299, Rating: 4.9, Description: "A long read"},
		},
		Suggestions: map[string][]domain.Suggestion{
			"p1": {{ID: "s1", ProductID: "p1", Content: "Add colours", Source: domain.SuggestionSourceAI, Sentiment: domain.SentimentNeutral}},
		},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(testFixture())
	require.NoError(t, err)
	return idx
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// Query Tests
// ============================================================================

func TestIndex_AllPreservesSourceOrder(t *testing.T) {
	idx := newTestIndex(t)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(idx.All()))
	assert.Equal(t, 4, idx.Len())
}

func TestIndex_SearchBlankReturnsAll(t *testing.T) {
	idx := newTestIndex(t)
	assert.Equal(t, idx.All(), idx.Search(""))
	assert.Equal(t, idx.All(), idx.Search("   \t"))
}

func TestIndex_SearchNoMatch(t *testing.T) {
	idx := newTestIndex(t)
	result := idx.Search("XYZZY-NOT-PRESENT")
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestIndex_SearchFields(t *testing.T) {
	idx := newTestIndex(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"airpods", []string{"p1"}},
		{"  PRO  ", []string{"p1", "p2"}},
		{"denim", []string{"p3"}},
		{"electronics", []string{"p1", "p2"}},
		{"wearables", []string{"p2"}},
		{"media", []string{"p4"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(idx.Search(tt.query)))
		})
	}
}

func TestIndex_FilterEmptyEqualsAll(t *testing.T) {
	idx := newTestIndex(t)
	assert.Equal(t, idx.All(), idx.Filter(domain.Filter{}))
}

func TestIndex_FilterNarrowsMonotonically(t *testing.T) {
	idx := newTestIndex(t)

	broad := idx.Filter(domain.Filter{Categories: []string{"electronics"}})
	for _, p := range broad {
		assert.Equal(t, "electronics", p.Category)
	}

	narrow := idx.Filter(domain.Filter{Categories: []string{"electronics"}, Rating: ptr(4.5)})
	assert.Subset(t, ids(broad), ids(narrow))
	assert.Equal(t, []string{"p1"}, ids(narrow))
}

func TestIndex_FilterAxes(t *testing.T) {
	idx := newTestIndex(t)

	tests := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{"subcategory excludes untagged products", domain.Filter{SubCategories: []string{"mens", "audio"}}, []string{"p1", "p3"}},
		{"price range inclusive", domain.Filter{Price: &domain.PriceRange{Min: 299, Max: 2499}}, []string{"p2", "p3", "p4"}},
		{"rating", domain.Filter{Rating: ptr(4.3)}, []string{"p1", "p4"}},
		{"no match", domain.Filter{Categories: []string{"toys"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(idx.Filter(tt.filter)))
		})
	}
}

func TestIndex_FetchByID(t *testing.T) {
	idx := newTestIndex(t)

	p, err := idx.FetchByID("p3")
	require.NoError(t, err)
	assert.Equal(t, "Slim Fit Jeans", p.Name)

	_, err = idx.FetchByID("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIndex_TopRated(t *testing.T) {
	idx := newTestIndex(t)

	assert.Equal(t, []string{"p4", "p1", "p2"}, ids(idx.TopRated(3)))
	// p2 and p3 tie on rating and keep source order.
	assert.Equal(t, []string{"p4", "p1", "p2", "p3"}, ids(idx.TopRated(8)))
	assert.Empty(t, idx.TopRated(0))
}

func TestIndex_Categories(t *testing.T) {
	idx := newTestIndex(t)

	cats := idx.Categories()
	require.Len(t, cats, 3)
	cats[0].SubCategories[0].Name = "changed"

	c, err := idx.CategoryByID("electronics")
	require.NoError(t, err)
	assert.Equal(t, "Audio", c.SubCategories[0].Name)

	_, err = idx.CategoryByID("garden")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIndex_ReadsDoNotAliasState(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.AppendReview("p1", domain.Review{ID: "r1", Rating: 5}))

	p, err := idx.FetchByID("p1")
	require.NoError(t, err)
	p.Reviews[0].Comment = "tampered"
	p.Name = "tampered"

	again, err := idx.FetchByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "Bluetooth AirPods Pro", again.Name)
	assert.Empty(t, again.Reviews[0].Comment)
}

// ============================================================================
// Mutation Tests
// ============================================================================

func TestIndex_AppendReviewPrependsAndIsVisible(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.AppendReview("p2", domain.Review{ID: "old", Rating: 3}))
	require.NoError(t, idx.AppendReview("p2", domain.Review{ID: "new", Rating: 5}))

	p, err := idx.FetchByID("p2")
	require.NoError(t, err)
	require.Len(t, p.Reviews, 2)
	assert.Equal(t, "new", p.Reviews[0].ID)
	assert.Equal(t, "old", p.Reviews[1].ID)

	found := idx.Search("digital watch")
	require.Len(t, found, 1)
	assert.Len(t, found[0].Reviews, 2)

	filtered := idx.Filter(domain.Filter{SubCategories: []string{"wearables"}})
	require.Len(t, filtered, 1)
	assert.Equal(t, "new", filtered[0].Reviews[0].ID)
}

func TestIndex_AppendReviewUnknownProduct(t *testing.T) {
	idx := newTestIndex(t)
	err := idx.AppendReview("nope", domain.Review{ID: "r"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIndex_AppendReviewDoesNotMutateEarlierReads(t *testing.T) {
	idx := newTestIndex(t)
	before := idx.All()

	require.NoError(t, idx.AppendReview("p1", domain.Review{ID: "r1", Rating: 4}))

	assert.Empty(t, before[0].Reviews)
}

func TestIndex_AppendSuggestion(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.AppendSuggestion("p1", domain.Suggestion{ID: "s2", ProductID: "p1", Source: domain.SuggestionSourceUser}))
	require.NoError(t, idx.AppendSuggestion("p4", domain.Suggestion{ID: "s3", ProductID: "p4", Source: domain.SuggestionSourceUser}))

	got, err := idx.Suggestions("p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s2", "s1"}, []string{got[0].ID, got[1].ID})

	got, err = idx.Suggestions("p4")
	require.NoError(t, err)
	require.Len(t, got, 1)

	none, err := idx.Suggestions("p2")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.ErrorIs(t, idx.AppendSuggestion("nope", domain.Suggestion{}), apperrors.ErrNotFound)
	_, err = idx.Suggestions("nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIndex_ConcurrentReadersAndWriters(t *testing.T) {
	idx := newTestIndex(t)

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter {
				_ = idx.AppendReview("p1", domain.Review{ID: fmt.Sprintf("w%d-%d", w, i), Rating: 5})
			}
		}()
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				for _, p := range idx.Filter(domain.Filter{}) {
					_ = len(p.Reviews)
				}
			}
		}()
	}
	wg.Wait()

	p, err := idx.FetchByID("p1")
	require.NoError(t, err)
	assert.Len(t, p.Reviews, writers*perWriter)
}

func TestNewIndex_RejectsInvalidFixture(t *testing.T) {
	f := testFixture()
	f.Products = append(f.Products, f.Products[0])

	_, err := NewIndex(f)
	assert.ErrorIs(t, err, ErrInvalidFixture)
}
