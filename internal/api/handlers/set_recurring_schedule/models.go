package set_recurring_schedule

import (
	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
)

// SlotInput HTTP модель входного слота. Время конца опционально.
type SlotInput struct {
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime,omitempty"`
}

// RangeInput HTTP модель диапазона, разворачиваемого в слоты
type RangeInput struct {
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	IncrementMinutes *int   `json:"incrementMinutes,omitempty"`
}

// DayScheduleInput расписание на один день недели
type DayScheduleInput struct {
	DayOfWeek string      `json:"dayOfWeek"` // "monday" ... "sunday"
	Slots     []SlotInput `json:"slots,omitempty"`
	Range     *RangeInput `json:"range,omitempty"`
}

// SetRecurringRequest HTTP запрос на установку еженедельного шаблона
type SetRecurringRequest struct {
	Days []DayScheduleInput `json:"days"`
}

// SlotResponse HTTP модель слота записи
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
}

// RecordResponse HTTP модель записи доступности
type RecordResponse struct {
	ID        int64          `json:"id"`
	DoctorID  int64          `json:"doctorId"`
	Kind      string         `json:"kind"`
	DayOfWeek *string        `json:"dayOfWeek,omitempty"`
	Date      *string        `json:"date,omitempty"`
	IsActive  bool           `json:"isActive"`
	Slots     []SlotResponse `json:"slots"`
}

// SetRecurringResponse HTTP модель ответа: по записи на каждый день
type SetRecurringResponse struct {
	Records []RecordResponse `json:"records"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetRecurringRequest) ToServiceRequest(doctorID, actorID int64) *models.SetRecurringRequest {
	days := make([]models.DaySchedule, len(r.Days))
	for i, day := range r.Days {
		var slots []models.SlotInput
		if len(day.Slots) > 0 {
			slots = make([]models.SlotInput, len(day.Slots))
			for j, slot := range day.Slots {
				slots[j] = models.SlotInput{
					StartTime: slot.StartTime,
					EndTime:   slot.EndTime,
				}
			}
		}

		var rangeInput *models.RangeInput
		if day.Range != nil {
			rangeInput = &models.RangeInput{
				StartTime:        day.Range.StartTime,
				EndTime:          day.Range.EndTime,
				IncrementMinutes: day.Range.IncrementMinutes,
			}
		}

		days[i] = models.DaySchedule{
			DayOfWeek: domain.DayOfWeek(day.DayOfWeek),
			Slots:     slots,
			Range:     rangeInput,
		}
	}

	return &models.SetRecurringRequest{
		DoctorID: doctorID,
		Days:     days,
		ActorID:  actorID,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(records []*models.RecordResponse) *SetRecurringResponse {
	result := make([]RecordResponse, len(records))
	for i, record := range records {
		slots := make([]SlotResponse, len(record.Slots))
		for j, slot := range record.Slots {
			slots[j] = SlotResponse{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				IsBooked:  slot.IsBooked,
			}
		}

		entry := RecordResponse{
			ID:       record.ID,
			DoctorID: record.DoctorID,
			Kind:     string(record.Kind),
			IsActive: record.IsActive,
			Slots:    slots,
		}
		if record.DayOfWeek != nil {
			day := string(*record.DayOfWeek)
			entry.DayOfWeek = &day
		}
		if record.Date != nil {
			date := record.Date.String()
			entry.Date = &date
		}

		result[i] = entry
	}

	return &SetRecurringResponse{Records: result}
}
