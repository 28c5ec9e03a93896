package resolve_range

import (
	"github.com/m04kA/HMS-ScheduleService/internal/service/availability/models"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayResponse HTTP модель доступности на один день диапазона
type DayResponse struct {
	Date      string         `json:"date"`
	DayOfWeek string         `json:"dayOfWeek"`
	Available bool           `json:"available"`
	Type      string         `json:"type"`
	Slots     []SlotResponse `json:"slots"`
}

// RangeAvailabilityResponse HTTP модель доступности на диапазон дат
type RangeAvailabilityResponse struct {
	DoctorID  int64         `json:"doctorId"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Days      []DayResponse `json:"days"`
}

// FromServiceModel конвертирует модель сервиса в HTTP response
func FromServiceModel(result *models.RangeAvailability) *RangeAvailabilityResponse {
	days := make([]DayResponse, len(result.Days))
	for i, day := range result.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = SlotResponse{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
			}
		}

		days[i] = DayResponse{
			Date:      day.Date.String(),
			DayOfWeek: string(day.DayOfWeek),
			Available: day.Available,
			Type:      string(day.Type),
			Slots:     slots,
		}
	}

	return &RangeAvailabilityResponse{
		DoctorID:  result.DoctorID,
		StartDate: result.StartDate.String(),
		EndDate:   result.EndDate.String(),
		Days:      days,
	}
}
