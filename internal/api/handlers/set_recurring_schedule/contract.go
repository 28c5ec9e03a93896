package set_recurring_schedule

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetRecurring(ctx context.Context, req *models.SetRecurringRequest) ([]*models.RecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
