package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/cart"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
)

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testServer struct {
	router http.Handler
	index  *catalog.Index
	ledger *cart.Ledger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	idx, err := catalog.NewIndex(catalog.Fixture{
		Categories: []domain.Category{
			{ID: "electronics", Name: "Electronics", SubCategories: []domain.SubCategory{{ID: "audio", Name: "Audio"}}},
			{ID: "home-kitchen", Name: "Home & Kitchen"},
		},
		Products: []domain.Product{
			{
				ID: "product-3", Name: "Bluetooth AirPods Pro", Category: "electronics", SubCategory: "audio", Price: 9999, Rating: 4.5,
				Reviews: []domain.Review{
					{ID: "review-1", UserID: "u1", Username: "ana", Rating: 5, Comment: "great sound", Sentiment: domain.NewSentimentScore(0.8, 0.2, 0)},
					{ID: "review-2", UserID: "u2", Username: "ben", Rating: 4, Comment: "good fit", Sentiment: domain.NewSentimentScore(0.6, 0.4, 0)},
				},
			},
			{ID: "product-12", Name: "Electric Kettle 1.8L", Category: "home-kitchen", Price: 999, Rating: 4.7},
			{ID: "product-11", Name: "Non-stick Fry Pan", Category: "home-kitchen", Price: 899, Rating: 4.2},
		},
		Suggestions: map[string][]domain.Suggestion{
			"product-3": {{ID: "ai-suggestion-1", ProductID: "product-3", Content: "Great for travel", Source: domain.SuggestionSourceAI, Sentiment: domain.SentimentPositive}},
		},
	})
	require.NoError(t, err)

	logger := testLogger()
	ledger := cart.NewLedger()
	catalogSvc := service.NewCatalogService(idx, logger)
	deferred := service.NewDeferredCatalog(catalogSvc, service.Delays{})
	cartSvc := service.NewCartService(ledger, idx, logger)

	healthHandler := health.NewHandler()
	router := NewRouter(catalogSvc, deferred, cartSvc, healthHandler, logger)

	return &testServer{router: router, index: idx, ledger: ledger}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Nil(t, env.Error, "unexpected error envelope: %s", rec.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code string, fields map[string]string) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error, "expected error envelope: %s", rec.Body.String())
	return env.Error.Code, env.Error.Fields
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func newRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	return httptest.NewRequest(method, path, reader)
}

func serve(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}
