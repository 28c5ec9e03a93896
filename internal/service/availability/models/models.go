package models

import (
	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// Slot модель слота в ответе сервиса
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DayAvailability эффективная доступность врача на одну дату
type DayAvailability struct {
	DoctorID  int64
	Date      types.DateString
	DayOfWeek domain.DayOfWeek
	Available bool
	Type      domain.AvailabilityType
	Slots     []Slot
}

// RangeAvailability пер-дневная доступность врача на диапазон дат
type RangeAvailability struct {
	DoctorID  int64
	StartDate types.DateString
	EndDate   types.DateString
	Days      []DayAvailability
}

// FromDayResolution конвертирует результат разрешения в модель ответа
func FromDayResolution(doctorID int64, date types.DateString, res domain.DayResolution) *DayAvailability {
	slots := make([]Slot, len(res.Slots))
	for i, slot := range res.Slots {
		slots[i] = Slot{StartTime: slot.StartTime, EndTime: slot.EndTime}
	}

	return &DayAvailability{
		DoctorID:  doctorID,
		Date:      date,
		DayOfWeek: domain.DayOfWeekFromDate(date),
		Available: res.Available,
		Type:      res.Type,
		Slots:     slots,
	}
}
