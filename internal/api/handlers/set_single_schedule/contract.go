package set_single_schedule

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetSingle(ctx context.Context, req *models.SetSingleRequest) (*models.RecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
