package search_availability

import (
	"context"

	searchDoctors "github.com/m04kA/HMS-ScheduleService/internal/usecase/search_doctors"
)

type SearchDoctorsUseCase interface {
	Execute(ctx context.Context, req *searchDoctors.Request) (*searchDoctors.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
