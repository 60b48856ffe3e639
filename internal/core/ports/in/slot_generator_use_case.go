package in

import (
	"context"

	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

type BookingRequest struct {
	ProfessionalID   uuid.UUID
	PatientID        uuid.UUID
	ConsultationType string
	Date             json_types.Date
	Time             json_types.TimeOfDay
}

type SlotGeneratorUseCase interface {
	// Генерация свободных слотов по всем специалистам
	GenerateAvailableSlots(ctx context.Context) ([]domain.Slot, error)

	// Запись на слот. Проверка конфликта повторяется в момент вставки,
	// при проигрыше конкурентной записи возвращается domain.ErrSlotTaken
	BookSlot(ctx context.Context, req BookingRequest) (*domain.Appointment, error)

	// Обновление кэша слотов при изменении записи на прием извне
	ReconcileAppointment(ctx context.Context, appointment domain.Appointment) error

	// Сброс кэша при изменении правил рабочих часов
	InvalidateProfessionalSlots(ctx context.Context, professionalID uuid.UUID)
	InvalidateAllSlots(ctx context.Context)
}
