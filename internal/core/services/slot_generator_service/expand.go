package slot_generator_service

import (
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

// ExpandWindow нарезает окно [start, end) на подряд идущие слоты фиксированной
// длительности. Слоты не пересекаются, шаг равен длительности, неполный хвост
// окна отбрасывается. Если окно короче одного слота - результат пустой.
//
// Вся арифметика идет в минутах от начала дня, без дат и таймзон
func ExpandWindow(start, end json_types.TimeOfDay, durationMinutes int) []json_types.TimeOfDay {
	if durationMinutes <= 0 || !start.Before(end) {
		return nil
	}

	times := make([]json_types.TimeOfDay, 0)
	for t := start; t.AddMinutes(durationMinutes).TotalMinutes() <= end.TotalMinutes(); t = t.AddMinutes(durationMinutes) {
		times = append(times, t)
	}

	return times
}
