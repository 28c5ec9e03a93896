package block_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/HMS-ScheduleService/internal/api/middleware"
	scheduleService "github.com/m04kA/HMS-ScheduleService/internal/service/schedule"
	scheduleModels "github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle POST /api/v1/doctors/{doctorId}/schedule/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("POST /doctors/{id}/schedule/block - Invalid doctor ID: %s", vars["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /doctors/{id}/schedule/block - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/schedule/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := types.NewDateStringFromString(req.Date)
	if err != nil {
		h.logger.Warn("POST /doctors/{id}/schedule/block - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.BlockDate(r.Context(), &scheduleModels.BlockDateRequest{
		DoctorID: doctorID,
		Date:     date,
		ActorID:  actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /doctors/{id}/schedule/block - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, scheduleService.ErrConcurrentModification):
			h.logger.Warn("POST /doctors/{id}/schedule/block - Concurrent modification: doctor_id=%d, date=%s", doctorID, date)
			handlers.RespondError(w, http.StatusConflict, msgScheduleConflict)

		default:
			h.logger.Error("POST /doctors/{id}/schedule/block - Failed: doctor_id=%d, date=%s, error=%v",
				doctorID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/schedule/block - Date blocked: doctor_id=%d, date=%s, record_id=%d",
		doctorID, date, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(result))
}
