package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

const settingsKey = "cafe:settings:global"

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("cache: read failed")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("cache: write failed")
)

// LookupRecorder учитывает попадания и промахи кэша
type LookupRecorder interface {
	RecordCacheLookup(result string)
}

// SettingsCache read-through кэш настроек в Redis
// Запись сбрасывается сервисом настроек после каждого изменения
type SettingsCache struct {
	client   redis.Cmdable
	ttl      time.Duration
	recorder LookupRecorder
}

// NewSettingsCache создает кэш; recorder может быть nil
func NewSettingsCache(client redis.Cmdable, ttl time.Duration, recorder LookupRecorder) *SettingsCache {
	return &SettingsCache{client: client, ttl: ttl, recorder: recorder}
}

type settingsEntry struct {
	MaxOrdersPerSlot int       `json:"maxOrdersPerSlot"`
	BlockedDates     []string  `json:"blockedDates"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Get возвращает настройки из кэша; ok=false при промахе
func (c *SettingsCache) Get(ctx context.Context) (*domain.Settings, bool, error) {
	raw, err := c.client.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(resultMiss)
		return nil, false, nil
	}
	if err != nil {
		c.record(resultError)
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var entry settingsEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.record(resultError)
		return nil, false, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}

	settings := &domain.Settings{
		MaxOrdersPerSlot: entry.MaxOrdersPerSlot,
		BlockedDates:     make([]domain.CalendarDate, 0, len(entry.BlockedDates)),
		UpdatedAt:        entry.UpdatedAt,
	}
	for _, s := range entry.BlockedDates {
		d, err := domain.ParseCalendarDate(s)
		if err != nil {
			c.record(resultError)
			return nil, false, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
		}
		settings.BlockedDates = append(settings.BlockedDates, d)
	}

	c.record(resultHit)
	return settings, true, nil
}

// Set кладет настройки в кэш на ttl
func (c *SettingsCache) Set(ctx context.Context, settings *domain.Settings) error {
	entry := settingsEntry{
		MaxOrdersPerSlot: settings.MaxOrdersPerSlot,
		BlockedDates:     make([]string, 0, len(settings.BlockedDates)),
		UpdatedAt:        settings.UpdatedAt,
	}
	for _, d := range settings.BlockedDates {
		entry.BlockedDates = append(entry.BlockedDates, d.String())
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}
	if err := c.client.Set(ctx, settingsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate удаляет настройки из кэша
func (c *SettingsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrCacheWrite, err)
	}
	return nil
}

func (c *SettingsCache) record(result string) {
	if c.recorder != nil {
		c.recorder.RecordCacheLookup(result)
	}
}
