package settings

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/settings/models"
)

// Service сервис для работы с настройками кафе
// Настройки читаются часто, меняются только администраторами (last writer wins)
type Service struct {
	repo   SettingsRepository
	cache  SettingsCache
	admins AdminChecker
	now    func() time.Time
	logger Logger

	// generation растет при каждой записи настроек
	generation atomic.Uint64
}

// NewService создает новый экземпляр сервиса настроек
// cache может быть nil
func NewService(
	repo SettingsRepository,
	cache SettingsCache,
	admins AdminChecker,
	logger Logger,
) *Service {
	if cache == nil {
		cache = nopCache{}
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		admins: admins,
		now:    time.Now,
		logger: logger,
	}
}

// Get возвращает текущие настройки
// При первом чтении создает настройки с дефолтными значениями
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("GetSettings: cache read failed, falling back to repository: %v", err)
	}
	if ok {
		return cached, nil
	}

	gen := s.generation.Load()
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// Настройки изменились во время чтения: прочитанное могло устареть, в кэш не кладем
	if s.generation.Load() != gen {
		s.logger.Info("GetSettings: settings changed during load, skipping cache write")
		return settings, nil
	}
	if err := s.cache.Set(ctx, settings); err != nil {
		s.logger.Warn("GetSettings: cache write failed: %v", err)
	}
	return settings, nil
}

// GetSettings публичный метод для API
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// UpdateMaxOrdersPerSlot изменяет вместимость слота
// Доступно только администраторам. Уже принятые заказы не затрагиваются
func (s *Service) UpdateMaxOrdersPerSlot(ctx context.Context, req *models.UpdateMaxOrdersRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateMaxOrdersPerSlot: user=%s, value=%d", req.UserID, req.MaxOrdersPerSlot)

	// 1. Проверяем права доступа
	if !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("UpdateMaxOrdersPerSlot: user=%s is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем значение
	if req.MaxOrdersPerSlot < domain.MinOrdersPerSlot || req.MaxOrdersPerSlot > domain.MaxOrdersPerSlot {
		s.logger.Warn("UpdateMaxOrdersPerSlot: value %d out of range", req.MaxOrdersPerSlot)
		return nil, fmt.Errorf("%w: maxOrdersPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinOrdersPerSlot, domain.MaxOrdersPerSlot)
	}

	// 3. Читаем актуальные настройки из хранилища (не из кэша)
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	settings.MaxOrdersPerSlot = req.MaxOrdersPerSlot
	if err := s.save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateMaxOrdersPerSlot: maxOrdersPerSlot set to %d", settings.MaxOrdersPerSlot)
	return models.FromDomainSettings(settings), nil
}

// ToggleBlockedDate блокирует дату, если она не заблокирована, иначе разблокирует
func (s *Service) ToggleBlockedDate(ctx context.Context, req *models.ToggleBlockedDateRequest) (*models.ToggleBlockedDateResponse, error) {
	s.logger.Info("ToggleBlockedDate: user=%s, date=%s", req.UserID, req.Date)

	if !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("ToggleBlockedDate: user=%s is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	isBlocked := settings.ToggleBlockedDate(req.Date)
	if err := s.save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("ToggleBlockedDate: date=%s blocked=%t", req.Date, isBlocked)
	return &models.ToggleBlockedDateResponse{
		Date:      req.Date.String(),
		IsBlocked: isBlocked,
		Settings:  *models.FromDomainSettings(settings),
	}, nil
}

// load читает настройки из хранилища, создавая дефолтные при отсутствии
func (s *Service) load(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		s.logger.Error("GetSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	defaults := domain.DefaultSettings()
	defaults.UpdatedAt = s.now()

	settings, err = s.repo.InitDefaults(ctx, defaults)
	if err != nil {
		s.logger.Error("GetSettings: failed to create default settings: %v", err)
		return nil, fmt.Errorf("%w: InitDefaults - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSettings: created default settings (maxOrdersPerSlot=%d)", settings.MaxOrdersPerSlot)
	return settings, nil
}

func (s *Service) save(ctx context.Context, settings *domain.Settings) error {
	settings.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, settings); err != nil {
		s.logger.Error("SaveSettings: repository error: %v", err)
		return fmt.Errorf("%w: Save - repository error: %v", ErrInternal, err)
	}
	s.generation.Add(1)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("SaveSettings: cache invalidation failed: %v", err)
	}
	return nil
}
