package middleware

import (
	"net/http"
	"sync"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
)

// InFlight не пускает второй запрос пользователя, пока первый не завершен
// Повторное нажатие "оформить заказ" получает 409
type InFlight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{active: make(map[string]struct{})}
}

func (f *InFlight) acquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.active[key]; busy {
		return false
	}
	f.active[key] = struct{}{}
	return true
}

func (f *InFlight) release(key string) {
	f.mu.Lock()
	delete(f.active, key)
	f.mu.Unlock()
}

// Guard ставится после Auth
func (f *InFlight) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if !f.acquire(userID) {
			handlers.RespondConflict(w, "an order is already being placed")
			return
		}
		defer f.release(userID)
		next.ServeHTTP(w, r)
	})
}
