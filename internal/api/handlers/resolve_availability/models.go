package resolve_availability

import (
	"github.com/m04kA/HMS-ScheduleService/internal/service/availability/models"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayAvailabilityResponse HTTP модель доступности врача на дату
type DayAvailabilityResponse struct {
	DoctorID  int64          `json:"doctorId"`
	Date      string         `json:"date"`
	DayOfWeek string         `json:"dayOfWeek"`
	Available bool           `json:"available"`
	Type      string         `json:"type"`
	Slots     []SlotResponse `json:"slots"`
}

// FromServiceModel конвертирует модель сервиса в HTTP response
func FromServiceModel(day *models.DayAvailability) *DayAvailabilityResponse {
	slots := make([]SlotResponse, len(day.Slots))
	for i, slot := range day.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &DayAvailabilityResponse{
		DoctorID:  day.DoctorID,
		Date:      day.Date.String(),
		DayOfWeek: string(day.DayOfWeek),
		Available: day.Available,
		Type:      string(day.Type),
		Slots:     slots,
	}
}
