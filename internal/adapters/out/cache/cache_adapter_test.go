package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-slots-generator/internal/config"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(event string, fields out.LogFields) {}
func (nopLogger) Info(event string, fields out.LogFields)  {}
func (nopLogger) Warn(event string, fields out.LogFields)  {}
func (nopLogger) Error(event string, fields out.LogFields) {}

func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(module string) out.LoggerPort        { return l }

func newTestAdapter(t *testing.T) *CacheAdapter {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.ProfessionalsSize = 10

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	require.NotNil(t, adapter)
	return adapter
}

func testSlots(professionalID uuid.UUID) []domain.Slot {
	return []domain.Slot{
		{ProfessionalID: professionalID, Date: json_types.NewDate(2026, time.March, 2), Time: json_types.NewTimeOfDay(9, 0), Status: domain.SlotStatusAvailable},
		{ProfessionalID: professionalID, Date: json_types.NewDate(2026, time.March, 2), Time: json_types.NewTimeOfDay(9, 30), Status: domain.SlotStatusAvailable},
		{ProfessionalID: professionalID, Date: json_types.NewDate(2026, time.March, 4), Time: json_types.NewTimeOfDay(9, 0), Status: domain.SlotStatusAvailable},
	}
}

func TestCacheAdapter_DisabledReturnsNil(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	require.NoError(t, err)
	assert.Nil(t, adapter)
}

func TestCacheAdapter_StoreAndGet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()
	professionalID := uuid.New()

	_, exists := adapter.GetSlots(ctx, professionalID)
	assert.False(t, exists)

	adapter.StoreSlots(ctx, professionalID, testSlots(professionalID))

	slots, exists := adapter.GetSlots(ctx, professionalID)
	require.True(t, exists)
	assert.Len(t, slots, 3)
}

func TestCacheAdapter_RemoveSlot(t *testing.T) {
	ctx := context.Background()
	professionalID := uuid.New()

	t.Run("removes exactly the matching slot", func(t *testing.T) {
		adapter := newTestAdapter(t)
		adapter.StoreSlots(ctx, professionalID, testSlots(professionalID))

		adapter.RemoveSlot(ctx, professionalID, json_types.NewDate(2026, time.March, 2), json_types.NewTimeOfDay(9, 30))

		slots, exists := adapter.GetSlots(ctx, professionalID)
		require.True(t, exists)
		require.Len(t, slots, 2)
		for _, slot := range slots {
			assert.False(t, slot.Date.Equal(json_types.NewDate(2026, time.March, 2)) && slot.Time.Equal(json_types.NewTimeOfDay(9, 30)))
		}
	})

	t.Run("same time on another date stays", func(t *testing.T) {
		adapter := newTestAdapter(t)
		adapter.StoreSlots(ctx, professionalID, testSlots(professionalID))

		adapter.RemoveSlot(ctx, professionalID, json_types.NewDate(2026, time.March, 4), json_types.NewTimeOfDay(9, 0))

		slots, _ := adapter.GetSlots(ctx, professionalID)
		require.Len(t, slots, 2)
		assert.True(t, slots[0].Date.Equal(json_types.NewDate(2026, time.March, 2)))
		assert.True(t, slots[1].Date.Equal(json_types.NewDate(2026, time.March, 2)))
	})

	t.Run("missing slot is a noop", func(t *testing.T) {
		adapter := newTestAdapter(t)
		adapter.StoreSlots(ctx, professionalID, testSlots(professionalID))

		adapter.RemoveSlot(ctx, professionalID, json_types.NewDate(2026, time.March, 2), json_types.NewTimeOfDay(23, 0))
		adapter.RemoveSlot(ctx, uuid.New(), json_types.NewDate(2026, time.March, 2), json_types.NewTimeOfDay(9, 0))

		slots, _ := adapter.GetSlots(ctx, professionalID)
		assert.Len(t, slots, 3)
	})
}

func TestCacheAdapter_StaleSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshot with past-dated slots is a miss", func(t *testing.T) {
		adapter := newTestAdapter(t)
		professionalID := uuid.New()

		pastDate := json_types.DateOf(time.Now().AddDate(0, 0, -7))
		adapter.StoreSlots(ctx, professionalID, []domain.Slot{
			{ProfessionalID: professionalID, Date: pastDate, Time: json_types.NewTimeOfDay(9, 0), Status: domain.SlotStatusAvailable},
			{ProfessionalID: professionalID, Date: pastDate.AddDays(2), Time: json_types.NewTimeOfDay(9, 0), Status: domain.SlotStatusAvailable},
		})

		_, exists := adapter.GetSlots(ctx, professionalID)
		assert.False(t, exists)
	})

	t.Run("snapshot starting today stays a hit", func(t *testing.T) {
		adapter := newTestAdapter(t)
		professionalID := uuid.New()

		today := json_types.DateOf(time.Now())
		adapter.StoreSlots(ctx, professionalID, []domain.Slot{
			{ProfessionalID: professionalID, Date: today, Time: json_types.NewTimeOfDay(23, 59), Status: domain.SlotStatusAvailable},
			{ProfessionalID: professionalID, Date: today.AddDays(3), Time: json_types.NewTimeOfDay(9, 0), Status: domain.SlotStatusAvailable},
		})

		slots, exists := adapter.GetSlots(ctx, professionalID)
		require.True(t, exists)
		assert.Len(t, slots, 2)
	})

	t.Run("empty snapshot stored today stays a hit", func(t *testing.T) {
		adapter := newTestAdapter(t)
		professionalID := uuid.New()

		adapter.StoreSlots(ctx, professionalID, []domain.Slot{})

		slots, exists := adapter.GetSlots(ctx, professionalID)
		assert.True(t, exists)
		assert.Empty(t, slots)
	})
}

func TestCacheAdapter_Invalidation(t *testing.T) {
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	t.Run("invalidate one professional keeps the others", func(t *testing.T) {
		adapter := newTestAdapter(t)
		adapter.StoreSlots(ctx, first, testSlots(first))
		adapter.StoreSlots(ctx, second, testSlots(second))

		adapter.InvalidateProfessional(ctx, first)

		_, exists := adapter.GetSlots(ctx, first)
		assert.False(t, exists)
		_, exists = adapter.GetSlots(ctx, second)
		assert.True(t, exists)
	})

	t.Run("invalidate all purges everything", func(t *testing.T) {
		adapter := newTestAdapter(t)
		adapter.StoreSlots(ctx, first, testSlots(first))
		adapter.StoreSlots(ctx, second, testSlots(second))

		adapter.InvalidateAll(ctx)

		_, exists := adapter.GetSlots(ctx, first)
		assert.False(t, exists)
		_, exists = adapter.GetSlots(ctx, second)
		assert.False(t, exists)
	})
}
