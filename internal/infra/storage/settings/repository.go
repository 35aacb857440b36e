package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CafeOrderService/pkg/psqlbuilder"
)

const (
	tableName = "settings"

	// Настройки кафе глобальные: в таблице одна строка
	singletonID = 1
)

// Repository репозиторий настроек кафе (PostgreSQL)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает настройки или domain.ErrSettingsNotFound
// Внутри транзакции читает через неё (dbmetrics.GetExecutor)
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"max_orders_per_slot",
		"blocked_dates",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings  domain.Settings
		blocked   []string
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.MaxOrdersPerSlot,
		pq.Array(&blocked),
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	settings.BlockedDates, err = parseBlockedDates(blocked)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - parse blocked dates: %v", ErrScanRow, err)
	}
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Save сохраняет настройки целиком (last writer wins)
func (r *Repository) Save(ctx context.Context, settings *domain.Settings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	normalized := settings.Clone()
	normalized.Normalize()

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "max_orders_per_slot", "blocked_dates", "updated_at").
		Values(singletonID, normalized.MaxOrdersPerSlot, pq.Array(formatBlockedDates(normalized.BlockedDates)), normalized.UpdatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"max_orders_per_slot = EXCLUDED.max_orders_per_slot, " +
			"blocked_dates = EXCLUDED.blocked_dates, " +
			"updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}
	return nil
}

// InitDefaults создает настройки, если их еще нет, и возвращает текущие
// Параллельные первые чтения не перезаписывают друг друга (ON CONFLICT DO NOTHING)
func (r *Repository) InitDefaults(ctx context.Context, defaults *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "max_orders_per_slot", "blocked_dates", "updated_at").
		Values(singletonID, defaults.MaxOrdersPerSlot, pq.Array(formatBlockedDates(defaults.BlockedDates)), defaults.UpdatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InitDefaults - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: InitDefaults - execute insert: %w", ErrExecQuery, err)
	}

	return r.Get(ctx)
}

func formatBlockedDates(dates []domain.CalendarDate) []string {
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, d.String())
	}
	return result
}

func parseBlockedDates(values []string) ([]domain.CalendarDate, error) {
	result := make([]domain.CalendarDate, 0, len(values))
	for _, v := range values {
		d, err := domain.ParseCalendarDate(v)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}
