package resolve_availability

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

type AvailabilityService interface {
	Resolve(ctx context.Context, doctorID int64, date types.DateString) (*models.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
