package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wooplugin/gswc/internal/api/auth"
)

func testKeyPair(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	return priv
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_DevBypassWithoutHeader(t *testing.T) {
	m := AuthMiddleware{Env: "dev", Next: okHandler()}

	req := httptest.NewRequest(http.MethodGet, "/v1/feed/status", nil)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ProdRequiresBearer(t *testing.T) {
	priv := testKeyPair(t)
	m := AuthMiddleware{Env: "prod", PublicKey: &priv.PublicKey, Next: okHandler()}

	req := httptest.NewRequest(http.MethodGet, "/v1/feed/status", nil)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidManageTokenPasses(t *testing.T) {
	priv := testKeyPair(t)
	m := AuthMiddleware{Env: "prod", PublicKey: &priv.PublicKey, Next: okHandler()}

	token, err := auth.SignRS256ForTests(priv, auth.ScopeManage, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/feed/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddleware_WrongScopeIsForbidden(t *testing.T) {
	priv := testKeyPair(t)
	m := AuthMiddleware{Env: "prod", PublicKey: &priv.PublicKey, Next: okHandler()}

	token, err := auth.SignRS256ForTests(priv, "read", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/feed/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredTokenRejected(t *testing.T) {
	priv := testKeyPair(t)
	m := AuthMiddleware{Env: "prod", PublicKey: &priv.PublicKey, Next: okHandler()}

	// Already expired beyond the parser leeway.
	token, err := auth.SignRS256ForTests(priv, auth.ScopeManage, -5*time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/feed/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_DevStillValidatesPresentedToken(t *testing.T) {
	priv := testKeyPair(t)
	m := AuthMiddleware{Env: "dev", PublicKey: &priv.PublicKey, Next: okHandler()}

	req := httptest.NewRequest(http.MethodGet, "/v1/feed/status", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
