package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"goride/internal/access"
	"goride/internal/domain"
)

func TestIdempotencyCacheKey_ScopedPerUser(t *testing.T) {
	t.Parallel()

	// Two accounts sending the same key on the same route must never share
	// a cache entry.
	a := idempotencyCacheKey("/v1/rides", "rider-a", "1")
	b := idempotencyCacheKey("/v1/rides", "rider-b", "1")
	if a == b {
		t.Fatalf("cache keys collide across users: %q", a)
	}

	if got := idempotencyCacheKey("/v1/rides", "rider-a", "1"); got != a {
		t.Errorf("same inputs produced different keys: %q vs %q", got, a)
	}

	other := idempotencyCacheKey("/v1/payments", "rider-a", "1")
	if other == a {
		t.Errorf("cache keys collide across routes: %q", a)
	}
}

func TestIdempotencyScope(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(sessionStateKey, access.Ok(&domain.User{ID: "rider-1", Role: domain.RoleRider}))
	if got := idempotencyScope(c); got != "rider-1" {
		t.Errorf("scope = %q, want rider-1", got)
	}

	anon, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := idempotencyScope(anon); got != "anonymous" {
		t.Errorf("scope without a session = %q, want anonymous", got)
	}
}

func TestIdempotency_SkipsWithoutKey(t *testing.T) {
	t.Parallel()

	// A nil client proves the store is never consulted on these paths.
	router := gin.New()
	handler := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	router.POST("/v1/rides", Idempotency(nil), handler)
	router.GET("/v1/rides", Idempotency(nil), handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/rides", nil))
	if w.Code != http.StatusOK {
		t.Errorf("POST without key: status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/rides", nil)
	req.Header.Set(idempotencyHeader, "1")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET with key: status = %d, want 200", w.Code)
	}
}
