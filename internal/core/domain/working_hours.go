package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

var (
	ErrRuleWeekdayInvalid  = errors.New("working hours rule: weekday is not a business day")
	ErrRuleWindowInverted  = errors.New("working hours rule: end time is not after start time")
	ErrRuleDurationInvalid = errors.New("working hours rule: duration must be a positive number of minutes")
)

// WorkingHoursRule - повторяющееся недельное окно приема одного специалиста
// в один день недели
type WorkingHoursRule struct {
	ProfessionalID   uuid.UUID            `json:"professionalId"`
	ProfessionalName string               `json:"professionalName"`
	Specialty        string               `json:"specialty"`
	Weekday          Weekday              `json:"weekday"`
	StartTime        json_types.TimeOfDay `json:"startTime"`
	EndTime          json_types.TimeOfDay `json:"endTime"`
	DurationMinutes  int                  `json:"durationMinutes"`
}

// Validate проверяет условия, при которых правило пропускается генератором
func (r WorkingHoursRule) Validate() error {
	if !r.Weekday.IsBusinessDay() {
		return ErrRuleWeekdayInvalid
	}
	if !r.StartTime.Before(r.EndTime) {
		return ErrRuleWindowInverted
	}
	if r.DurationMinutes <= 0 {
		return ErrRuleDurationInvalid
	}
	return nil
}
