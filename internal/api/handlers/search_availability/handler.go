package search_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ScheduleService/internal/api/handlers"
	searchDoctors "github.com/m04kA/HMS-ScheduleService/internal/usecase/search_doctors"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

const (
	msgMissingCriteria = "укажите хотя бы один критерий поиска: date или name"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase SearchDoctorsUseCase
	logger  Logger
}

func NewHandler(useCase SearchDoctorsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/search?date=&name=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &searchDoctors.Request{}

	if rawDate := query.Get("date"); rawDate != "" {
		date, err := types.NewDateStringFromString(rawDate)
		if err != nil {
			h.logger.Warn("GET /availability/search - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if name := query.Get("name"); name != "" {
		req.Name = &name
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchDoctors.ErrInvalidInput):
			h.logger.Warn("GET /availability/search - No search criteria provided")
			handlers.RespondBadRequest(w, msgMissingCriteria)

		default:
			h.logger.Error("GET /availability/search - Search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/search - Found %d doctors", len(result.Doctors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
