package availability

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория записей доступности
type AvailabilityRepository interface {
	GetActiveSingle(ctx context.Context, doctorID int64, date types.DateString) (*domain.AvailabilityRecord, error)
	GetActiveRecurring(ctx context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
