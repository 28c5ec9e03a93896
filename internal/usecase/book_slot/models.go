package book_slot

import (
	"time"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	DoctorID  int64            // ID врача
	PatientID int64            // ID пациента (актор запроса)
	Date      types.DateString // Дата приёма
	StartTime types.TimeString // Начало слота
	EndTime   types.TimeString // Конец слота
}

// Response модель ответа на бронирование
type Response struct {
	RecordID      int64                   // ID записи доступности, в которой забронирован слот
	AppointmentID int64                   // ID записи в журнале приёмов
	DoctorID      int64                   // ID врача
	PatientID     int64                   // ID пациента
	Date          types.DateString        // Дата приёма
	StartTime     types.TimeString        // Начало слота
	EndTime       types.TimeString        // Конец слота
	SourceType    domain.AvailabilityType // Откуда пришел слот: разовая запись или шаблон
	Materialized  bool                    // Создана ли разовая запись из шаблона в ходе бронирования
	BookedAt      time.Time               // Время бронирования
}
