package middleware

import (
	"context"
	"net/http"

	"github.com/fonarev/gopherwallet.git/internal/auth"
	"github.com/fonarev/gopherwallet.git/internal/logger"
	"github.com/fonarev/gopherwallet.git/internal/models"
)

const AuthCookieName = "auth_token"

type ctxKey int

const (
	ctxKeyClaims ctxKey = iota
)

// Auth validates the JWT cookie and stores the claims in the context.
func Auth(authSrv auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil {
				http.Error(rw, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			claims, err := authSrv.ClaimsFromJWT(cookie.Value)
			if err != nil {
				logger.Log.Debug("token rejected")
				http.Error(rw, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
			next.ServeHTTP(rw, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin users; must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromRequest(r)
		if claims == nil || !claims.Admin {
			http.Error(rw, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(rw, r)
	})
}

func ClaimsFromRequest(r *http.Request) *models.Claims {
	claims, _ := r.Context().Value(ctxKeyClaims).(*models.Claims)
	return claims
}

// UIDFromRequest returns 0 when the request is unauthenticated.
func UIDFromRequest(r *http.Request) int {
	if claims := ClaimsFromRequest(r); claims != nil {
		return claims.UserID
	}
	return 0
}
