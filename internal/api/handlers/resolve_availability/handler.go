package resolve_availability

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
	msgMissingDate     = "параметр date обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/doctors/{doctorId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("GET /doctors/{id}/availability - Invalid doctor ID: %s", vars["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /doctors/{id}/availability - Missing date: doctor_id=%d", doctorID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := types.NewDateStringFromString(rawDate)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/availability - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Resolve(r.Context(), doctorID, date)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/availability - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /doctors/{id}/availability - Failed to resolve: doctor_id=%d, date=%s, error=%v",
				doctorID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/availability - Resolved: doctor_id=%d, date=%s, available=%t",
		doctorID, date, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromServiceModel(result))
}
