package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" (24 часа, с ведущими нулями).
// Фиксированная ширина позволяет сравнивать значения лексикографически.
type TimeString string

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

// NewTimeString создает TimeString из time.Time (часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат "HH:MM" и диапазоны часов/минут
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return ErrInvalidTimeFormat
	}

	hours, minutes, ok := t.parts()
	if !ok {
		return ErrInvalidTimeFormat
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return ErrInvalidTimeFormat
	}

	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsBefore возвращает true, если t строго раньше other.
// Сравнение лексикографическое, корректно за счет фиксированной ширины.
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// AddMinutes возвращает время через minutes минут.
// Возвращает ErrTimeOutOfRange при выходе за пределы суток (без переноса на следующий день).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	hours, mins, _ := t.parts()
	total := hours*60 + mins + minutes

	if total < 0 || total > 24*60 {
		return "", ErrTimeOutOfRange
	}

	// 24:00 допускаем как конец суток, но не как начало слота
	if total == 24*60 {
		return TimeString("24:00"), nil
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// parts разбирает часы и минуты без аллокаций
func (t TimeString) parts() (hours, minutes int, ok bool) {
	if len(t) != 5 {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, 0, false
		}
	}
	hours = int(t[0]-'0')*10 + int(t[1]-'0')
	minutes = int(t[3]-'0')*10 + int(t[4]-'0')
	return hours, minutes, true
}
