package out

import (
	"context"

	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

type StoragePort interface {
	// Правила рабочих часов всех специалистов
	GetWorkingHoursRules(ctx context.Context) ([]domain.WorkingHoursRule, error)

	// Записи в занимающих статусах, начиная с указанной даты
	GetOccupyingAppointments(ctx context.Context, from json_types.Date) ([]domain.Appointment, error)

	// Вставка новой записи. При конкурентной записи на тот же слот
	// возвращает domain.ErrSlotTaken
	InsertAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error)
}
