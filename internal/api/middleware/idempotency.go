package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// HTTP header used for idempotent requests
const IdempotencyHeaderKey = "Idempotency-Key"

type IdempotencyRecord struct {
	StatusCode int
	BodyJSON   []byte
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error
}

type MemoryIdempotencyStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	recs map[string]map[string]IdempotencyRecord // endpoint -> keyhash -> record
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryIdempotencyStore{
		ttl:  ttl,
		recs: make(map[string]map[string]IdempotencyRecord),
	}
}

func (s *MemoryIdempotencyStore) Get(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	ep, ok := s.recs[endpoint]
	if !ok {
		return IdempotencyRecord{}, false, nil
	}
	rec, ok := ep[idemKeyHash]
	if !ok {
		return IdempotencyRecord{}, false, nil
	}
	if time.Now().UTC().After(rec.ExpiresAt) {
		return IdempotencyRecord{}, false, nil
	}
	return rec, true, nil
}

func (s *MemoryIdempotencyStore) Put(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.recs[endpoint]
	if !ok {
		ep = make(map[string]IdempotencyRecord)
		s.recs[endpoint] = ep
	}
	if rec.ExpiresAt.IsZero() {
		rec.ExpiresAt = time.Now().UTC().Add(s.ttl)
	}
	ep[idemKeyHash] = rec
	return nil
}

// IdempotencyMiddleware replays the recorded response for a repeated
// Idempotency-Key, so double-submitting a generate request does not run the
// pipeline twice.
type IdempotencyMiddleware struct {
	Store IdempotencyStore
	Next  http.Handler
}

func (m IdempotencyMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.Next == nil || m.Store == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		// continue
	default:
		m.Next.ServeHTTP(w, r)
		return
	}

	idemKey := strings.TrimSpace(r.Header.Get(IdempotencyHeaderKey))
	if idemKey == "" {
		m.Next.ServeHTTP(w, r)
		return
	}

	endpoint := strings.TrimSpace(r.URL.Path)
	if endpoint == "" {
		endpoint = "/"
	}

	keyHash := sha256Hex(idemKey)

	// Cache hit?
	rec, ok, err := m.Store.Get(r.Context(), endpoint, keyHash)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"idempotency_lookup_failed"}`))
		return
	}

	if ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		status := rec.StatusCode
		if status == 0 {
			status = http.StatusOK
		}

		w.WriteHeader(status)
		_, _ = w.Write(rec.BodyJSON)
		return
	}

	// Ensure downstream can read the body
	if r.Body != nil {
		reqBody, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	// Record downstream response
	rr := httptest.NewRecorder()
	m.Next.ServeHTTP(rr, r)

	// Copy recorded response to the real writer
	for k, vals := range rr.Header() {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}

	status := rr.Code
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)
	_, _ = w.Write(rr.Body.Bytes())

	// If caching fails, do not fail the request; response has already been written.
	_ = m.Store.Put(r.Context(), endpoint, keyHash, IdempotencyRecord{
		StatusCode: status,
		BodyJSON:   rr.Body.Bytes(),
		CreatedAt:  time.Now().UTC(),
	})
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
