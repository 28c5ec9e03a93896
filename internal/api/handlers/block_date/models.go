package block_date

import (
	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
)

// BlockDateRequest HTTP запрос на блокировку даты
type BlockDateRequest struct {
	Date string `json:"date"` // "2026-09-15"
}

// BlockDateResponse HTTP модель созданной блокировки
type BlockDateResponse struct {
	ID       int64  `json:"id"`
	DoctorID int64  `json:"doctorId"`
	Date     string `json:"date"`
	Blocked  bool   `json:"blocked"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.RecordResponse) *BlockDateResponse {
	result := &BlockDateResponse{
		ID:       resp.ID,
		DoctorID: resp.DoctorID,
		Blocked:  true,
	}
	if resp.Date != nil {
		result.Date = resp.Date.String()
	}
	return result
}
