package slot_generator_service

import (
	"time"

	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

// Ключ сравнения нормализован до календарной даты и минут:
// секунды и смещение таймзоны сервера на равенство не влияют
type appointmentKey struct {
	professionalID uuid.UUID
	date           string
	timeOfDay      string
}

type AppointmentIndex map[appointmentKey]struct{}

// NewAppointmentIndex строит индекс занятых сочетаний (специалист, дата, время).
// Записи в незанимающих статусах в индекс не попадают
func NewAppointmentIndex(appointments []domain.Appointment) AppointmentIndex {
	index := make(AppointmentIndex, len(appointments))
	for _, appointment := range appointments {
		if !appointment.Status.Occupies() {
			continue
		}
		index[appointmentKey{
			professionalID: appointment.ProfessionalID,
			date:           appointment.Date.String(),
			timeOfDay:      appointment.Time.String(),
		}] = struct{}{}
	}
	return index
}

func (i AppointmentIndex) Booked(professionalID uuid.UUID, date json_types.Date, timeOfDay json_types.TimeOfDay) bool {
	_, exists := i[appointmentKey{
		professionalID: professionalID,
		date:           date.String(),
		timeOfDay:      timeOfDay.String(),
	}]
	return exists
}

// WithinLeadTime сообщает, начинается ли слот слишком близко к текущему
// моменту. Слот, начинающийся ровно на границе буфера, тоже отклоняется
func WithinLeadTime(date json_types.Date, timeOfDay json_types.TimeOfDay, now time.Time, leadTime time.Duration) bool {
	slotStart := date.At(timeOfDay, now.Location())
	return !slotStart.After(now.Add(leadTime))
}
