package domain

import (
	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

type SlotStatus string

// Занятые комбинации не эмитятся вообще, поэтому у сгенерированного слота
// статус всегда один
const SlotStatusAvailable SlotStatus = "available"

// Slot - свободное для записи сочетание (специалист, дата, время).
// Существует только в рамках одного вызова генерации, никуда не сохраняется
type Slot struct {
	ProfessionalID   uuid.UUID            `json:"professionalId"`
	ProfessionalName string               `json:"professionalName"`
	Specialty        string               `json:"specialty"`
	Date             json_types.Date      `json:"date"`
	Time             json_types.TimeOfDay `json:"time"`
	Status           SlotStatus           `json:"status"`
}
