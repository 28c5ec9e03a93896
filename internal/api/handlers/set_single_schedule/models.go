package set_single_schedule

import (
	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
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

// SetSingleRequest HTTP запрос на установку разового расписания
type SetSingleRequest struct {
	Date  string      `json:"date"` // "2026-09-15"
	Slots []SlotInput `json:"slots,omitempty"`
	Range *RangeInput `json:"range,omitempty"`
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

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetSingleRequest) ToServiceRequest(doctorID, actorID int64) (*models.SetSingleRequest, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.SetSingleRequest{
		DoctorID: doctorID,
		Date:     date,
		Slots:    toServiceSlots(r.Slots),
		Range:    toServiceRange(r.Range),
		ActorID:  actorID,
	}, nil
}

func toServiceSlots(slots []SlotInput) []models.SlotInput {
	if len(slots) == 0 {
		return nil
	}

	result := make([]models.SlotInput, len(slots))
	for i, slot := range slots {
		result[i] = models.SlotInput{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}
	return result
}

func toServiceRange(rangeInput *RangeInput) *models.RangeInput {
	if rangeInput == nil {
		return nil
	}
	return &models.RangeInput{
		StartTime:        rangeInput.StartTime,
		EndTime:          rangeInput.EndTime,
		IncrementMinutes: rangeInput.IncrementMinutes,
	}
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.RecordResponse) *RecordResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			IsBooked:  slot.IsBooked,
		}
	}

	result := &RecordResponse{
		ID:       resp.ID,
		DoctorID: resp.DoctorID,
		Kind:     string(resp.Kind),
		IsActive: resp.IsActive,
		Slots:    slots,
	}
	if resp.DayOfWeek != nil {
		day := string(*resp.DayOfWeek)
		result.DayOfWeek = &day
	}
	if resp.Date != nil {
		date := resp.Date.String()
		result.Date = &date
	}

	return result
}
