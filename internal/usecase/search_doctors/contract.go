package search_doctors

import (
	"context"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/doctorservice"
)

// AvailabilityRepository интерфейс репозитория записей доступности
type AvailabilityRepository interface {
	List(ctx context.Context, filter availability.ListFilter) ([]*domain.AvailabilityRecord, error)
}

// DoctorServiceClient интерфейс клиента справочника врачей
type DoctorServiceClient interface {
	ListDoctors(ctx context.Context) ([]doctorservice.Doctor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
