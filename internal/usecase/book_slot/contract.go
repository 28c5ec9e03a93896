package book_slot

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/appointmentservice"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/auditservice"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория записей доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, record *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error)
	GetActiveSingle(ctx context.Context, doctorID int64, date types.DateString) (*domain.AvailabilityRecord, error)
	GetActiveRecurring(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error)
	MarkSlotBooked(ctx context.Context, recordID int64, slotIndex int) error
	MarkSlotFree(ctx context.Context, recordID int64, slotIndex int) error
}

// AppointmentServiceClient интерфейс клиента журнала приёмов
type AppointmentServiceClient interface {
	CreateAppointment(ctx context.Context, req *appointmentservice.CreateAppointmentRequest) (*appointmentservice.Appointment, error)
}

// AuditRecorder интерфейс fire-and-forget журнала аудита
type AuditRecorder interface {
	Record(event auditservice.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
