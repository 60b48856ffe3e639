package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/medagenda/clinic-slots-generator/internal/config"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
)

type SlotsCacheEntry struct {
	Slots    []domain.Slot
	StoredAt time.Time
}

type CacheAdapter struct {
	slots  *lru.Cache[uuid.UUID, *SlotsCacheEntry]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruSlots, err := lru.New[uuid.UUID, *SlotsCacheEntry](cfg.Cache.ProfessionalsSize)
	if err != nil {
		logger.Error("cache.slots.init_failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.ProfessionalsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		slots:  lruSlots,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetSlots(ctx context.Context, professionalID uuid.UUID) ([]domain.Slot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.slots.Get(professionalID)
	if !exists {
		c.logger.Debug("cache.slots.get.miss", out.LogFields{
			"professionalId": professionalID,
		})
		return nil, false
	}

	// Снимок без инвалидации способен пережить собственные даты. Устаревший
	// снимок отдается как промах, следующая генерация его перезапишет
	if entryStale(entry, json_types.DateOf(time.Now())) {
		c.logger.Debug("cache.slots.get.stale", out.LogFields{
			"professionalId": professionalID,
			"storedAt":       entry.StoredAt,
		})
		return nil, false
	}

	c.logger.Debug("cache.slots.get.hit", out.LogFields{
		"professionalId": professionalID,
		"slotsCount":     len(entry.Slots),
	})
	return entry.Slots, true
}

// Снимок устарел, когда его самый ранний слот датирован прошедшим днем.
// Слоты хранятся отсортированными по (дата, время), достаточно первого.
// Пустой снимок живет до конца дня, в который был собран
func entryStale(entry *SlotsCacheEntry, today json_types.Date) bool {
	if len(entry.Slots) == 0 {
		return json_types.DateOf(entry.StoredAt).Before(today)
	}
	return entry.Slots[0].Date.Before(today)
}

func (c *CacheAdapter) StoreSlots(ctx context.Context, professionalID uuid.UUID, slots []domain.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.slots.store", out.LogFields{
		"professionalId": professionalID,
		"slotsCount":     len(slots),
	})

	c.slots.Add(professionalID, &SlotsCacheEntry{
		Slots:    slots,
		StoredAt: time.Now(),
	})
}

// RemoveSlot удаляет из кэша ровно один потребленный слот
func (c *CacheAdapter) RemoveSlot(ctx context.Context, professionalID uuid.UUID, date json_types.Date, timeOfDay json_types.TimeOfDay) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.slots.Get(professionalID)
	if !exists {
		return
	}

	// Ищем слот по нормализованным дате и времени
	index := -1
	for i, slot := range entry.Slots {
		if slot.Date.Equal(date) && slot.Time.Equal(timeOfDay) {
			index = i
			break
		}
	}
	if index == -1 {
		return
	}

	remaining := make([]domain.Slot, 0, len(entry.Slots)-1)
	remaining = append(remaining, entry.Slots[:index]...)
	remaining = append(remaining, entry.Slots[index+1:]...)
	entry.Slots = remaining

	c.slots.Add(professionalID, entry)

	c.logger.Debug("cache.slots.slot_removed", out.LogFields{
		"professionalId": professionalID,
		"date":           date,
		"time":           timeOfDay,
	})
}

func (c *CacheAdapter) InvalidateProfessional(ctx context.Context, professionalID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slots.Remove(professionalID)
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slots.Purge()
}
