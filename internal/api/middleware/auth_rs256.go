package middleware

import (
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/wooplugin/gswc/internal/api/auth"
)

type AuthMiddleware struct {
	Env       string
	PublicKey *rsa.PublicKey
	Next      http.Handler
}

func (m AuthMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.Next == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// In dev, requests without an Authorization header pass through so
	// local tooling is not blocked. Any presented token is still checked.
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.EqualFold(strings.TrimSpace(m.Env), "dev") && authz == "" {
		m.Next.ServeHTTP(w, r)
		return
	}

	if !strings.HasPrefix(authz, "Bearer ") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"missing bearer token"}`))
		return
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	if tokenString == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"empty bearer token"}`))
		return
	}

	claims, err := auth.ParseAndValidateRS256(tokenString, m.PublicKey)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized","message":"invalid token"}`))
		return
	}

	if claims.Scope != auth.ScopeManage {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden","message":"insufficient scope"}`))
		return
	}

	m.Next.ServeHTTP(w, r)
}
