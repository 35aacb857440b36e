package settings

import (
	"context"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
	// InitDefaults сохраняет defaults, только если настроек еще нет, и возвращает текущие
	InitDefaults(ctx context.Context, defaults *domain.Settings) (*domain.Settings, error)
}

// SettingsCache кэш настроек; ошибки кэша не фатальны
type SettingsCache interface {
	Get(ctx context.Context) (*domain.Settings, bool, error)
	Set(ctx context.Context, settings *domain.Settings) error
	Invalidate(ctx context.Context) error
}

// AdminChecker проверка прав администратора
type AdminChecker interface {
	IsAdmin(userID string) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopCache struct{}

func (nopCache) Get(context.Context) (*domain.Settings, bool, error) { return nil, false, nil }
func (nopCache) Set(context.Context, *domain.Settings) error         { return nil }
func (nopCache) Invalidate(context.Context) error                    { return nil }
