package slot_generator_service

import (
	"time"

	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
)

// GenerateAvailableSlots - чистая функция генерации: для фиксированных правил,
// записей и "сейчас" результат полностью детерминирован. Время передается
// параметром, внутри часы не читаются.
//
// Для каждого правила берется ближайшая дата его дня недели, окно нарезается
// на слоты, занятые и слишком близкие к текущему моменту кандидаты
// отбрасываются. Некорректное правило пропускается, генерация по остальным
// продолжается
func GenerateAvailableSlots(
	rules []domain.WorkingHoursRule,
	appointments []domain.Appointment,
	now time.Time,
	leadTime time.Duration,
	logger out.LoggerPort,
) []domain.Slot {
	index := NewAppointmentIndex(appointments)
	today := json_types.DateOf(now)

	slots := make([]domain.Slot, 0)
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			if logger != nil {
				logger.Warn("slots.generate.rule.skipped", out.LogFields{
					"professionalId": rule.ProfessionalID,
					"weekday":        rule.Weekday,
					"reason":         err.Error(),
				})
			}
			continue
		}

		date, ok := NextOccurrence(rule.Weekday, today)
		if !ok {
			continue
		}

		for _, timeOfDay := range ExpandWindow(rule.StartTime, rule.EndTime, rule.DurationMinutes) {
			if index.Booked(rule.ProfessionalID, date, timeOfDay) {
				continue
			}
			if WithinLeadTime(date, timeOfDay, now, leadTime) {
				continue
			}

			slots = append(slots, domain.Slot{
				ProfessionalID:   rule.ProfessionalID,
				ProfessionalName: rule.ProfessionalName,
				Specialty:        rule.Specialty,
				Date:             date,
				Time:             timeOfDay,
				Status:           domain.SlotStatusAvailable,
			})
		}
	}

	SortSlots(slots)
	return slots
}

// FilterLeadTime отсеивает из ранее сгенерированного списка слоты, которые
// к новому "сейчас" уже попали в буфер или прошли. Используется при выдаче
// слотов из кэша
func FilterLeadTime(slots []domain.Slot, now time.Time, leadTime time.Duration) []domain.Slot {
	filtered := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if WithinLeadTime(slot.Date, slot.Time, now, leadTime) {
			continue
		}
		filtered = append(filtered, slot)
	}
	return filtered
}
