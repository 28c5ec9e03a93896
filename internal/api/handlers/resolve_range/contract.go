package resolve_range

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

type AvailabilityService interface {
	ResolveRange(ctx context.Context, doctorID int64, startDate, endDate types.DateString) (*models.RangeAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
