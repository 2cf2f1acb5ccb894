package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/mana-gg/arena/internal/admin"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey  contextKey = "dryRun"
	adminKey   contextKey = "adminID"
	roleKey    contextKey = "adminRole"
	sessionKey contextKey = "sessionSecret"
)

// paramsMiddleware handles common query parameters like 'verbose' and
// 'dry_run', and lifts the bearer session token into the context.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		if secret := bearerToken(r); secret != "" {
			ctx = context.WithValue(ctx, sessionKey, secret)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminMiddleware authenticates the operator via basic auth and requires the
// given permission. Failures are reported uniformly so the response does not
// leak whether the username exists.
func (s *Server) adminMiddleware(perm admin.Permission) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="arena admin"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			role, err := s.Admins.Authenticate(username, password)
			if err != nil {
				if !errors.Is(err, admin.ErrUnauthorized) {
					log.Error("Operator authentication failed", "error", err)
				}
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !admin.HasPermission(role, perm) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, username)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

func sessionFromContext(r *http.Request) (string, bool) {
	secret, ok := r.Context().Value(sessionKey).(string)
	return secret, ok && secret != ""
}

func adminFromContext(r *http.Request) string {
	username, _ := r.Context().Value(adminKey).(string)
	return username
}
