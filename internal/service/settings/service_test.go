package settings

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/access"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings/models"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
)

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context) (*domain.Settings, bool, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.Settings)
	return s, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, s *domain.Settings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newService(repo SettingsRepository, cache SettingsCache) *Service {
	return NewService(repo, cache, access.NewAdmins([]string{"admin"}), logger.NewWithWriter(io.Discard, "info"))
}

func TestGet_CreatesDefaultsLazily(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store, nil)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, settings.MaxOrdersPerSlot)
	assert.Empty(t, settings.BlockedDates)

	stored, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stored.MaxOrdersPerSlot)
}

func TestGet_CacheHitSkipsRepository(t *testing.T) {
	cached := domain.DefaultSettings()
	cached.MaxOrdersPerSlot = 7

	cache := &mockCache{}
	cache.On("Get", mock.Anything).Return(cached, true, nil)

	// Хранилище пустое: если сервис к нему обратится, вернутся дефолты, а не 7
	svc := newService(memory.NewStore(), cache)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, settings.MaxOrdersPerSlot)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestGet_CacheFailureFallsBack(t *testing.T) {
	cache := &mockCache{}
	cache.On("Get", mock.Anything).Return(nil, false, errors.New("redis down"))
	cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := newService(memory.NewStore(), cache)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, settings.MaxOrdersPerSlot)
}

// racingRepo выполняет onGet после первого чтения, имитируя запись администратора между чтением и кэшированием
type racingRepo struct {
	*memory.Store
	onGet func()
	fired bool
}

func (r *racingRepo) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := r.Store.Get(ctx)
	if !r.fired && r.onGet != nil {
		r.fired = true
		r.onGet()
	}
	return settings, err
}

func TestGet_DoesNotCacheSettingsChangedDuringLoad(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), domain.DefaultSettings()))

	cache := &mockCache{}
	cache.On("Get", mock.Anything).Return(nil, false, nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	repo := &racingRepo{Store: store}
	svc := newService(repo, cache)
	repo.onGet = func() {
		_, err := svc.UpdateMaxOrdersPerSlot(context.Background(), &models.UpdateMaxOrdersRequest{UserID: "admin", MaxOrdersPerSlot: 9})
		require.NoError(t, err)
	}

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)

	// Вернулись ранее прочитанные настройки, но в кэш они не попали
	assert.Equal(t, 3, settings.MaxOrdersPerSlot)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	cache.AssertCalled(t, "Invalidate", mock.Anything)
}

func TestGet_CachesOnCleanMiss(t *testing.T) {
	cache := &mockCache{}
	cache.On("Get", mock.Anything).Return(nil, false, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil).Once()

	svc := newService(memory.NewStore(), cache)

	_, err := svc.Get(context.Background())
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestUpdateMaxOrdersPerSlot(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		value   int
		wantErr error
	}{
		{name: "ok", user: "admin", value: 5},
		{name: "lower bound", user: "admin", value: 1},
		{name: "upper bound", user: "admin", value: 100},
		{name: "zero", user: "admin", value: 0, wantErr: ErrInvalidInput},
		{name: "too large", user: "admin", value: 101, wantErr: ErrInvalidInput},
		{name: "not admin", user: "customer", value: 5, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			svc := newService(store, nil)

			resp, err := svc.UpdateMaxOrdersPerSlot(context.Background(), &models.UpdateMaxOrdersRequest{
				UserID:           tt.user,
				MaxOrdersPerSlot: tt.value,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, resp.MaxOrdersPerSlot)

			stored, err := store.Get(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.value, stored.MaxOrdersPerSlot)
		})
	}
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	cache := &mockCache{}
	cache.On("Invalidate", mock.Anything).Return(nil).Once()

	svc := newService(memory.NewStore(), cache)

	_, err := svc.UpdateMaxOrdersPerSlot(context.Background(), &models.UpdateMaxOrdersRequest{UserID: "admin", MaxOrdersPerSlot: 4})
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestToggleBlockedDate(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store, nil)
	date, _ := domain.ParseCalendarDate("2024-06-01")

	resp, err := svc.ToggleBlockedDate(context.Background(), &models.ToggleBlockedDateRequest{UserID: "admin", Date: date})
	require.NoError(t, err)
	assert.True(t, resp.IsBlocked)
	assert.Equal(t, []string{"2024-06-01"}, resp.Settings.BlockedDates)

	resp, err = svc.ToggleBlockedDate(context.Background(), &models.ToggleBlockedDateRequest{UserID: "admin", Date: date})
	require.NoError(t, err)
	assert.False(t, resp.IsBlocked)
	assert.Empty(t, resp.Settings.BlockedDates)

	_, err = svc.ToggleBlockedDate(context.Background(), &models.ToggleBlockedDateRequest{UserID: "customer", Date: date})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
