package types

import (
	"errors"
	"fmt"
	"time"
)

// DateString календарная дата в формате "YYYY-MM-DD" без компонента времени.
// Фиксированная ширина позволяет сравнивать значения лексикографически,
// а отсутствие времени суток исключает проблемы с часовыми поясами
// при определении дня недели.
type DateString string

// ErrInvalidDateFormat возвращается при некорректном формате даты
var ErrInvalidDateFormat = errors.New("types: invalid date string format, expected YYYY-MM-DD")

const dateLayout = "2006-01-02"

// NewDateString создает DateString из time.Time (только календарная часть)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString парсит строку "YYYY-MM-DD" в DateString
func NewDateStringFromString(s string) (DateString, error) {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	// Нормализуем, чтобы "2025-1-2" и подобные варианты не проходили
	if parsed.Format(dateLayout) != s {
		return "", ErrInvalidDateFormat
	}
	return DateString(s), nil
}

// Validate проверяет формат и календарную корректность даты
func (d DateString) Validate() error {
	_, err := NewDateStringFromString(string(d))
	return err
}

// IsZero возвращает true для пустого значения
func (d DateString) IsZero() bool {
	return d == ""
}

// String возвращает строковое представление "YYYY-MM-DD"
func (d DateString) String() string {
	return string(d)
}

// IsBefore возвращает true, если d строго раньше other
func (d DateString) IsBefore(other DateString) bool {
	return d < other
}

// IsAfter возвращает true, если d строго позже other
func (d DateString) IsAfter(other DateString) bool {
	return d > other
}

// Weekday возвращает день недели даты.
// Чистая функция от календарного значения: дата интерпретируется как
// полночь UTC, поэтому результат не зависит от локального часового пояса.
func (d DateString) Weekday() time.Weekday {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// AddDays возвращает дату через days дней
func (d DateString) AddDays(days int) DateString {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return DateString(t.AddDate(0, 0, days).Format(dateLayout))
}

// DaysUntil возвращает количество дней от d до other (other - d)
func (d DateString) DaysUntil(other DateString) int {
	from, err1 := time.Parse(dateLayout, string(d))
	to, err2 := time.Parse(dateLayout, string(other))
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
