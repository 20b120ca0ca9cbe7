package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/pkg/logger"
)

// UserIDHeader optionally identifies the shopper behind a request. It is used
// for log enrichment only; the storefront performs no authentication.
const UserIDHeader = "X-User-ID"

// RequestLogger returns middleware that builds a request-scoped logger enriched
// with correlation_id, user_id, trace_id, and span_id and stores it in the
// request context. Downstream handlers retrieve it with logger.FromContext.
//
// Mount it after RequestLogging (correlation id) and Tracing (span context).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := r.Header.Get(UserIDHeader); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
