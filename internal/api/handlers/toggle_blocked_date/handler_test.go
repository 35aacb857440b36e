package toggle_blocked_date

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/access"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings/models"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
)

func newRouter() *mux.Router {
	log := logger.NewWithWriter(io.Discard, "info")
	svc := settings.NewService(memory.NewStore(), nil, access.NewAdmins([]string{"admin"}), log)

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/admin/settings/blocked-dates/{date}/toggle", NewHandler(svc, log).Handle).Methods(http.MethodPost)
	return r
}

func toggle(r http.Handler, user, date string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/settings/blocked-dates/"+date+"/toggle", nil)
	req.Header.Set(middleware.HeaderUserID, user)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_TogglesBackAndForth(t *testing.T) {
	r := newRouter()

	rec := toggle(r, "admin", "2024-06-01")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ToggleBlockedDateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsBlocked)
	assert.Equal(t, []string{"2024-06-01"}, resp.Settings.BlockedDates)

	rec = toggle(r, "admin", "2024-06-01")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsBlocked)
	assert.Empty(t, resp.Settings.BlockedDates)
}

func TestHandle_Rejections(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusForbidden, toggle(r, "customer", "2024-06-01").Code)
	assert.Equal(t, http.StatusBadRequest, toggle(r, "admin", "June-1").Code)
}

var _ SettingsService = (*settings.Service)(nil)
