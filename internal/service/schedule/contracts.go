package schedule

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/auditservice"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория записей доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, record *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRecord, error)
	GetActiveSingle(ctx context.Context, doctorID int64, date types.DateString) (*domain.AvailabilityRecord, error)
	GetActiveRecurring(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error)
	FindInactiveRecurring(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error)
	Deactivate(ctx context.Context, id int64, updatedBy int64) error
	ReactivateWithSlots(ctx context.Context, id int64, slots []domain.TimeSlot, updatedBy int64) error
	RemoveSlot(ctx context.Context, recordID int64, slotIndex int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditRecorder интерфейс fire-and-forget журнала аудита
type AuditRecorder interface {
	Record(event auditservice.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
