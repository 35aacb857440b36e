package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type admins map[string]bool

func (a admins) IsAdmin(userID string) bool { return a[userID] }

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestAuth(t *testing.T) {
	var gotUser, gotEmail string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUserID(r.Context())
		gotEmail = GetUserEmail(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "alice")
	req.Header.Set(HeaderUserEmail, "alice@example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "alice@example.com", gotEmail)
}

func TestRequireAdmin(t *testing.T) {
	h := Auth(RequireAdmin(admins{"boss": true})(http.HandlerFunc(okHandler)))

	for user, want := range map[string]int{"boss": http.StatusNoContent, "alice": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderUserID, user)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, user)
	}
}

type observed struct {
	method, route string
	status        int
}

type fakeObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (f *fakeObserver) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, observed{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(obs))
	r.HandleFunc("/orders/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))

	require.Len(t, obs.calls, 1)
	assert.Equal(t, observed{http.MethodGet, "/orders/{orderId}", http.StatusNotFound}, obs.calls[0])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	h := Auth(rl.Limit(http.HandlerFunc(okHandler)))
	call := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(HeaderUserID, user)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusTooManyRequests, call("alice"))
	// Лимит у каждого пользователя свой
	assert.Equal(t, http.StatusNoContent, call("bob"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("alice"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("alice")
	now = now.Add(visitorIdleTTL + time.Second)
	rl.allow("bob")
	rl.Cleanup()

	assert.NotContains(t, rl.visitors, "alice")
	assert.Contains(t, rl.visitors, "bob")
}

func TestInFlight_RejectsConcurrentDuplicate(t *testing.T) {
	guard := NewInFlight()
	entered := make(chan struct{})
	release := make(chan struct{})

	h := Auth(guard.Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusCreated)
	})))

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(HeaderUserID, "alice")
		return req
	}

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(first, newReq())
		close(done)
	}()
	<-entered

	second := httptest.NewRecorder()
	h.ServeHTTP(second, newReq())
	assert.Equal(t, http.StatusConflict, second.Code)

	close(release)
	<-done
	assert.Equal(t, http.StatusCreated, first.Code)

	// После завершения первого запроса пользователь снова может оформить заказ
	assert.True(t, guard.acquire("alice"))
}
