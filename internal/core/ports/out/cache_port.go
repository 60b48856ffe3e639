package out

import (
	"context"

	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

type CachePort interface {
	// Кэширование слотов по специалисту
	GetSlots(ctx context.Context, professionalID uuid.UUID) ([]domain.Slot, bool)
	StoreSlots(ctx context.Context, professionalID uuid.UUID, slots []domain.Slot)

	// Удаление ровно одного потребленного слота
	RemoveSlot(ctx context.Context, professionalID uuid.UUID, date json_types.Date, timeOfDay json_types.TimeOfDay)

	InvalidateProfessional(ctx context.Context, professionalID uuid.UUID)
	InvalidateAll(ctx context.Context)
}
