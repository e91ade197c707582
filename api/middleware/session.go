package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lisatcreative/printshop-backend/pkg/logger"
)

// Session assigns every shopper an anonymous session cookie. The cookie
// scopes the cart; no account or login exists anywhere in the storefront.
func Session(cookieName string, ttl time.Duration, secure bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}
			// Header fallback for clients that cannot carry cookies.
			if sessionID == "" {
				if header := r.Header.Get("X-Session-Id"); header != "" {
					if _, parseErr := uuid.Parse(header); parseErr == nil {
						sessionID = header
					}
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			// Refresh the cookie on every request so it tracks the cart TTL.
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
