package slot_generator_service

import (
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

// NextOccurrence возвращает ближайшую дату, на которую выпадает указанный
// день недели, включая сегодняшний день. Для выходных и нераспознанных
// значений применимой даты нет - возвращается false.
//
// Генератор сознательно смотрит только на одно ближайшее вхождение:
// горизонт предложения всегда не дальше 7 дней, по одной дате на правило
func NextOccurrence(weekday domain.Weekday, today json_types.Date) (json_types.Date, bool) {
	target, ok := weekday.TimeWeekday()
	if !ok {
		return json_types.Date{}, false
	}

	// Отрицательная разница значит, что день недели на этой неделе уже прошел
	diff := int(target) - int(today.Weekday())
	if diff < 0 {
		diff += 7
	}

	return today.AddDays(diff), true
}
