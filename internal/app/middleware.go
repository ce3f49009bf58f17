package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/centsible/centsible/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Resolve the Bearer token into a user and put it on the context
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if isPublicPath(req.URL.Path) {
				next.ServeHTTP(w, req)
				return
			}

			header := req.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := deps.Tokens.Validate(token)
			if err != nil {
				log.Debugf("rejected token: %v", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := req.Context()
			u, err := deps.UserService.GetUserByUid(ctx, claims.Uid)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", claims.Uid)
					http.Error(w, "user not found", http.StatusForbidden)
				} else {
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
				return
			}

			ctx = user.WithUser(ctx, u)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

func isPublicPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/")
}
