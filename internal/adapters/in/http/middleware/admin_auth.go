// internal/adapters/in/http/middleware/admin_auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so callers can depend on the middleware
// package instead of the firebase SDK directly.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type to avoid collisions (SA1029)
type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
)

// AdminAuthMiddleware verifies "Authorization: Bearer <ID_TOKEN>" with
// Firebase and puts uid/email into the request context. Any valid Firebase
// account of the admin project passes; there is no role model.
type AdminAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.FirebaseAuth == nil {
			http.Error(w, "admin auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			log.Printf("[admin_auth] token rejected: %v", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if emailRaw, ok := token.Claims["email"]; ok {
			if e, ok2 := emailRaw.(string); ok2 && strings.TrimSpace(e) != "" {
				ctx = context.WithValue(ctx, ctxKeyEmail, strings.TrimSpace(e))
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UIDFromContext returns the authenticated admin uid, if any.
func UIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyUID).(string)
	return v, ok && v != ""
}

// EmailFromContext returns the authenticated admin email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyEmail).(string)
	return v, ok && v != ""
}
