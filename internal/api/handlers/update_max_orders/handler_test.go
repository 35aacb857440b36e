package update_max_orders

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/access"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
)

func TestHandle(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "info")
	svc := settings.NewService(memory.NewStore(), nil, access.NewAdmins([]string{"admin"}), log)
	h := middleware.Auth(http.HandlerFunc(NewHandler(svc, log).Handle))

	tests := []struct {
		name       string
		user       string
		body       string
		wantStatus int
	}{
		{name: "ok", user: "admin", body: `{"maxOrdersPerSlot":5}`, wantStatus: http.StatusOK},
		{name: "zero", user: "admin", body: `{"maxOrdersPerSlot":0}`, wantStatus: http.StatusBadRequest},
		{name: "too large", user: "admin", body: `{"maxOrdersPerSlot":101}`, wantStatus: http.StatusBadRequest},
		{name: "not a number", user: "admin", body: `{"maxOrdersPerSlot":"five"}`, wantStatus: http.StatusBadRequest},
		{name: "customer", user: "alice", body: `{"maxOrdersPerSlot":5}`, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/admin/settings/max-orders", strings.NewReader(tt.body))
			req.Header.Set(middleware.HeaderUserID, tt.user)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
