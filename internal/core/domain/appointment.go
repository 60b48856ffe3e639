package domain

import (
	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// Occupies сообщает, занимает ли запись слот в календаре.
// Отмененные, завершенные и неявки слот не блокируют
func (s AppointmentStatus) Occupies() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusConfirmed
}

func OccupyingStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusConfirmed}
}

type Appointment struct {
	ID               uuid.UUID            `json:"id"`
	ProfessionalID   uuid.UUID            `json:"professionalId"`
	PatientID        uuid.UUID            `json:"patientId"`
	ConsultationType string               `json:"consultationType"`
	Date             json_types.Date      `json:"date"`
	Time             json_types.TimeOfDay `json:"time"`
	Status           AppointmentStatus    `json:"status"`
}
