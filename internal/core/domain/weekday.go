package domain

import (
	"strings"
	"time"
)

type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
)

// Клиника работает только по будням, суббота и воскресенье в расписании не встречаются
var businessWeekdays = map[Weekday]time.Weekday{
	WeekdayMonday:    time.Monday,
	WeekdayTuesday:   time.Tuesday,
	WeekdayWednesday: time.Wednesday,
	WeekdayThursday:  time.Thursday,
	WeekdayFriday:    time.Friday,
}

// TimeWeekday возвращает календарный день недели для рабочего дня.
// Для выходных и нераспознанных значений возвращает false
func (w Weekday) TimeWeekday() (time.Weekday, bool) {
	weekday, ok := businessWeekdays[Weekday(strings.ToLower(string(w)))]
	return weekday, ok
}

func (w Weekday) IsBusinessDay() bool {
	_, ok := w.TimeWeekday()
	return ok
}
