package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rakhulsr/ace-genuine-parts/app/auth"
	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	log "github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthMiddleware verifies the bearer token and stores the identity in the
// request context. Every failure is a 401.
func AuthMiddleware(verifier auth.Verifier, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				rnd.JSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "Missing or malformed authorization header",
				})
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.WithField("path", r.URL.Path).Debugf("AuthMiddleware: token rejected: %v", err)
				rnd.JSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "Invalid or expired token",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithIdentity(r.Context(), identity)))
		})
	}
}

// DealerMiddleware lets only callers owning an active dealer row through and
// stores that row in the request context.
func DealerMiddleware(dealerSvc *services.DealerService, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := helpers.UserID(r.Context())

			dealer, err := dealerSvc.ActiveDealer(r.Context(), userID)
			if err != nil {
				if errors.Is(err, services.ErrNotDealer) {
					log.Printf("DealerMiddleware: user %s attempted to access the dealer back-office", userID)
					rnd.JSON(w, http.StatusForbidden, map[string]interface{}{
						"success": false,
						"error":   "Dealer access required",
					})
					return
				}
				log.Printf("DealerMiddleware: failed to look up dealer for user %s: %v", userID, err)
				rnd.JSON(w, http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"error":   err.Error(),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithDealer(r.Context(), dealer)))
		})
	}
}
