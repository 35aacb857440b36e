package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

type lookups map[string]int

func (l lookups) RecordCacheLookup(result string) { l[result]++ }

func setup(t *testing.T) (*SettingsCache, *miniredis.Miniredis, lookups) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rec := lookups{}
	return NewSettingsCache(client, time.Minute, rec), mr, rec
}

func TestSettingsCache_MissThenHit(t *testing.T) {
	c, _, rec := setup(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	blocked, _ := domain.ParseCalendarDate("2024-06-01")
	require.NoError(t, c.Set(ctx, &domain.Settings{
		MaxOrdersPerSlot: 5,
		BlockedDates:     []domain.CalendarDate{blocked},
	}))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, got.MaxOrdersPerSlot)
	assert.Equal(t, []domain.CalendarDate{blocked}, got.BlockedDates)

	assert.Equal(t, 1, rec[resultMiss])
	assert.Equal(t, 1, rec[resultHit])
}

func TestSettingsCache_Invalidate(t *testing.T) {
	c, mr, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, domain.DefaultSettings()))
	assert.True(t, mr.Exists(settingsKey))

	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(settingsKey))
}

func TestSettingsCache_TTL(t *testing.T) {
	c, mr, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, domain.DefaultSettings()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSettingsCache_CorruptEntry(t *testing.T) {
	c, mr, rec := setup(t)
	require.NoError(t, mr.Set(settingsKey, "{broken"))

	_, ok, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheRead)
	assert.False(t, ok)
	assert.Equal(t, 1, rec[resultError])
}

func TestSettingsCache_ServerDown(t *testing.T) {
	c, mr, _ := setup(t)
	mr.Close()

	_, _, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheRead)
}
