package resolve_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ScheduleService/internal/api/handlers"
	availabilityService "github.com/m04kA/HMS-ScheduleService/internal/service/availability"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgMissingDates    = "параметры startDate и endDate обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRangeTooLong    = "диапазон дат слишком длинный"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/availability/range?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("GET /doctors/{id}/availability/range - Invalid doctor ID: %s", vars["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	rawStart := r.URL.Query().Get("startDate")
	rawEnd := r.URL.Query().Get("endDate")
	if rawStart == "" || rawEnd == "" {
		h.logger.Warn("GET /doctors/{id}/availability/range - Missing dates: doctor_id=%d", doctorID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	startDate, err := types.NewDateStringFromString(rawStart)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/availability/range - Invalid startDate %q: %v", rawStart, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	endDate, err := types.NewDateStringFromString(rawEnd)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/availability/range - Invalid endDate %q: %v", rawEnd, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ResolveRange(r.Context(), doctorID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrRangeTooLong):
			h.logger.Warn("GET /doctors/{id}/availability/range - Range too long: doctor_id=%d, %s to %s",
				doctorID, startDate, endDate)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/availability/range - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /doctors/{id}/availability/range - Failed to resolve: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/availability/range - Resolved: doctor_id=%d, %s to %s, days=%d",
		doctorID, startDate, endDate, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromServiceModel(result))
}
