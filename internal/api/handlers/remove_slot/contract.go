package remove_slot

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	RemoveSlot(ctx context.Context, req *models.RemoveSlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
