package block_date

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	BlockDate(ctx context.Context, req *models.BlockDateRequest) (*models.RecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
