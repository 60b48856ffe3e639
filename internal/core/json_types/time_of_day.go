package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay хранит только часы и минуты, без даты и таймзоны.
// Арифметика слотов всегда идет через минуты, дата подставляется позже.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay парсит строку "15:04", дополнительно принимает "15:04:05",
// секунды при этом отбрасываются
func ParseTimeOfDay(str string) (TimeOfDay, error) {
	parsedTime, err := time.Parse("15:04", str)
	if err != nil {
		parsedTime, err = time.Parse("15:04:05", str)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("failed to parse time of day: %v", err)
		}
	}

	return TimeOfDay{Hour: parsedTime.Hour(), Minute: parsedTime.Minute()}, nil
}

func (t TimeOfDay) TotalMinutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	total := t.TotalMinutes() + minutes
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.TotalMinutes() < other.TotalMinutes()
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.TotalMinutes() == other.TotalMinutes()
}

// MinutesUntil возвращает количество минут от t до other, может быть отрицательным
func (t TimeOfDay) MinutesUntil(other TimeOfDay) int {
	return other.TotalMinutes() - t.TotalMinutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	// Время приходит JSON-строкой, любой другой тип отклоняется ошибкой
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
