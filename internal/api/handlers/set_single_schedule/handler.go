package set_single_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/HMS-ScheduleService/internal/api/middleware"
	scheduleService "github.com/m04kA/HMS-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlots       = "некорректное расписание"
	msgScheduleConflict   = "расписание изменено параллельным запросом, повторите попытку"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/doctors/{doctorId}/schedule/single
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("POST /doctors/{id}/schedule/single - Invalid doctor ID: %s", vars["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /doctors/{id}/schedule/single - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetSingleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/schedule/single - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(doctorID, actorID)
	if err != nil {
		h.logger.Warn("POST /doctors/{id}/schedule/single - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SetSingle(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /doctors/{id}/schedule/single - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidSlots)

		case errors.Is(err, scheduleService.ErrConcurrentModification):
			h.logger.Warn("POST /doctors/{id}/schedule/single - Concurrent modification: doctor_id=%d", doctorID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleConflict)

		default:
			h.logger.Error("POST /doctors/{id}/schedule/single - Failed: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/schedule/single - Schedule set: doctor_id=%d, record_id=%d, slots=%d",
		doctorID, result.ID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
