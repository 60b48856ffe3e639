package domain

import "errors"

// ErrSlotTaken возвращается при попытке занять уже занятый слот.
// Список слотов - это снимок, а не бронь: проверка конфликта повторяется
// в момент записи, и из двух конкурентных записей выигрывает ровно одна
var ErrSlotTaken = errors.New("slot is already taken")
