package set_recurring_schedule

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
	msgInvalidSchedule    = "некорректный еженедельный шаблон"
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

// Handle POST /api/v1/doctors/{doctorId}/schedule/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("POST /doctors/{id}/schedule/recurring - Invalid doctor ID: %s", vars["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /doctors/{id}/schedule/recurring - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/schedule/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetRecurring(r.Context(), req.ToServiceRequest(doctorID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /doctors/{id}/schedule/recurring - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, scheduleService.ErrConcurrentModification):
			h.logger.Warn("POST /doctors/{id}/schedule/recurring - Concurrent modification: doctor_id=%d", doctorID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleConflict)

		default:
			h.logger.Error("POST /doctors/{id}/schedule/recurring - Failed: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/schedule/recurring - Template set: doctor_id=%d, days=%d",
		doctorID, len(result))
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
