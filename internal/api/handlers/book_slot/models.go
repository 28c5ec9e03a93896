package book_slot

import (
	"time"

	bookSlot "github.com/m04kA/HMS-ScheduleService/internal/usecase/book_slot"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// BookSlotRequest HTTP запрос на бронирование слота
type BookSlotRequest struct {
	DoctorID  int64  `json:"doctorId"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// BookSlotResponse HTTP модель подтвержденного бронирования
type BookSlotResponse struct {
	RecordID      int64  `json:"recordId"`
	AppointmentID int64  `json:"appointmentId"`
	DoctorID      int64  `json:"doctorId"`
	PatientID     int64  `json:"patientId"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	SourceType    string `json:"sourceType"`
	Materialized  bool   `json:"materialized"`
	BookedAt      string `json:"bookedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(patientID int64) (*bookSlot.Request, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	// "24:00" допустим как конец последнего слота дня
	endTime := types.TimeString(r.EndTime)
	if endTime != "24:00" {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
	}

	return &bookSlot.Request{
		DoctorID:  r.DoctorID,
		PatientID: patientID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookSlotResponse {
	return &BookSlotResponse{
		RecordID:      resp.RecordID,
		AppointmentID: resp.AppointmentID,
		DoctorID:      resp.DoctorID,
		PatientID:     resp.PatientID,
		Date:          resp.Date.String(),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		SourceType:    string(resp.SourceType),
		Materialized:  resp.Materialized,
		BookedAt:      resp.BookedAt.Format(time.RFC3339),
	}
}
