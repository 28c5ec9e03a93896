package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot generation defaults
const (
	// DefaultSlotIncrementMinutes шаг генерации слотов по умолчанию
	DefaultSlotIncrementMinutes = 60

	// DefaultSlotDurationMinutes длительность слота, выводимая при отсутствии явного времени конца
	DefaultSlotDurationMinutes = 60
)

// Business validation constants
const (
	MinSlotIncrementMinutes = 5
	MaxSlotIncrementMinutes = 480 // 8 часов

	// MaxRangeDays максимальная длина диапазона для пер-дневного разрешения расписания
	MaxRangeDays = 62
)
