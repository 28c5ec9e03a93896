package domain

import "errors"

var (
	// ErrInvalidKind возвращается при неизвестном типе записи
	ErrInvalidKind = errors.New("domain: invalid availability kind")

	// ErrKindFieldMismatch возвращается, когда заполненность dayOfWeek/date не соответствует типу записи
	ErrKindFieldMismatch = errors.New("domain: exactly one of dayOfWeek/date must be set, matching kind")

	// ErrInvalidDayOfWeek возвращается при некорректном дне недели
	ErrInvalidDayOfWeek = errors.New("domain: invalid day of week")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("domain: invalid date")

	// ErrInvalidSlotBounds возвращается, когда конец слота не позже начала
	ErrInvalidSlotBounds = errors.New("domain: slot end time must be after start time")

	// ErrSlotsNotOrdered возвращается, когда слоты не упорядочены по времени начала
	ErrSlotsNotOrdered = errors.New("domain: slots must be ordered by start time")

	// ErrSlotsOverlap возвращается при пересечении слотов внутри одной записи
	ErrSlotsOverlap = errors.New("domain: slots within a record must not overlap")

	// ErrInvalidRange возвращается при некорректном диапазоне времени (start >= end)
	ErrInvalidRange = errors.New("domain: range start must be before range end")

	// ErrInvalidIncrement возвращается при неположительном шаге генерации слотов
	ErrInvalidIncrement = errors.New("domain: slot increment must be positive")

	// ErrEndTimeOverflow возвращается, когда выведенное время конца слота выходит за пределы суток
	ErrEndTimeOverflow = errors.New("domain: inferred end time exceeds end of day")
)
