package slot_generator_service

import (
	"sort"

	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
)

// SortSlots упорядочивает слоты по возрастанию (дата, время).
// Сортировка стабильная: у совпадающих по времени слотов разных специалистов
// сохраняется порядок входных правил
func SortSlots(slots []domain.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Time.Before(slots[j].Time)
	})
}
