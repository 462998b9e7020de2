package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/atelier-ng/atelier-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession reads the anonymous session identifier from the request header,
// minting a fresh one when the client has none yet. The identifier is echoed
// back on every response so the storefront can persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if sessionID == "" || uuid.Validate(sessionID) != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, sessionID)

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
