package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
)

// --- Mock Catalog Store ---

type mockCatalogStore struct {
	mock.Mock
}

func (m *mockCatalogStore) All() []domain.Product {
	args := m.Called()
	return args.Get(0).([]domain.Product)
}

func (m *mockCatalogStore) Search(query string) []domain.Product {
	args := m.Called(query)
	return args.Get(0).([]domain.Product)
}

func (m *mockCatalogStore) Filter(f domain.Filter) []domain.Product {
	args := m.Called(f)
	return args.Get(0).([]domain.Product)
}

func (m *mockCatalogStore) FetchByID(id string) (domain.Product, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockCatalogStore) TopRated(n int) []domain.Product {
	args := m.Called(n)
	return args.Get(0).([]domain.Product)
}

func (m *mockCatalogStore) AppendReview(productID string, review domain.Review) error {
	args := m.Called(productID, review)
	return args.Error(0)
}

func (m *mockCatalogStore) AppendSuggestion(productID string, suggestion domain.Suggestion) error {
	args := m.Called(productID, suggestion)
	return args.Error(0)
}

func (m *mockCatalogStore) Suggestions(productID string) ([]domain.Suggestion, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

func (m *mockCatalogStore) Categories() []domain.Category {
	args := m.Called()
	return args.Get(0).([]domain.Category)
}

func (m *mockCatalogStore) CategoryByID(id string) (domain.Category, error) {
	args := m.Called(id)
	return args.Get(0).(domain.Category), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var testNow = time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC)

func newTestIndex(t *testing.T) *catalog.Index {
	t.Helper()
	idx, err := catalog.NewIndex(catalog.Fixture{
		Categories: []domain.Category{
			{ID: "electronics", Name: "Electronics", SubCategories: []domain.SubCategory{{ID: "audio", Name: "Audio"}}},
			{ID: "home-kitchen", Name: "Home & Kitchen"},
		},
		Products: []domain.Product{
			{ID: "product-3", Name: "Bluetooth AirPods Pro", Category: "electronics", SubCategory: "audio", Price: 9999, Rating: 4.5},
			{ID: "product-12", Name: "Electric Kettle 1.8L", Category: "home-kitchen", Price: 999, Rating: 4.7},
			{ID: "product-11", Name: "Non-stick Fry Pan", Category: "home-kitchen", Price: 899, Rating: 4.5},
		},
	})
	require.NoError(t, err)
	return idx
}

func newTestCatalogService(t *testing.T) (*CatalogService, *catalog.Index) {
	t.Helper()
	idx := newTestIndex(t)
	svc := NewCatalogService(idx, newTestLogger())
	svc.nowFunc = func() time.Time { return testNow }
	return svc, idx
}

var ctx = context.Background()
