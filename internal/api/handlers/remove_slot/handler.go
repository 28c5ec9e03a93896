package remove_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/HMS-ScheduleService/internal/api/middleware"
	scheduleService "github.com/m04kA/HMS-ScheduleService/internal/service/schedule"
	scheduleModels "github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidRecordID  = "некорректный ID записи"
	msgInvalidSlotIndex = "некорректный индекс слота"
	msgRecordNotFound   = "запись не найдена"
	msgSlotNotFound     = "слот не найден"
	msgSlotBooked       = "нельзя удалить забронированный слот"
	msgScheduleConflict = "расписание изменено параллельным запросом, повторите попытку"
	msgMissingUserID    = "отсутствует идентификатор пользователя"
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

// Handle DELETE /api/v1/schedule/records/{recordId}/slots/{slotIndex}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	recordID, err := strconv.ParseInt(vars["recordId"], 10, 64)
	if err != nil || recordID <= 0 {
		h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Invalid record ID: %s", vars["recordId"])
		handlers.RespondBadRequest(w, msgInvalidRecordID)
		return
	}

	slotIndex, err := strconv.Atoi(vars["slotIndex"])
	if err != nil || slotIndex < 0 {
		h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Invalid slot index: %s", vars["slotIndex"])
		handlers.RespondBadRequest(w, msgInvalidSlotIndex)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.RemoveSlot(r.Context(), &scheduleModels.RemoveSlotRequest{
		RecordID:  recordID,
		SlotIndex: slotIndex,
		ActorID:   actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrRecordNotFound):
			h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Record not found: record_id=%d", recordID)
			handlers.RespondNotFound(w, msgRecordNotFound)

		case errors.Is(err, scheduleService.ErrSlotNotFound):
			h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Slot not found: record_id=%d, index=%d",
				recordID, slotIndex)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, scheduleService.ErrSlotBooked):
			h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Slot is booked: record_id=%d, index=%d",
				recordID, slotIndex)
			handlers.RespondError(w, http.StatusConflict, msgSlotBooked)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotIndex)

		case errors.Is(err, scheduleService.ErrConcurrentModification):
			h.logger.Warn("DELETE /schedule/records/{id}/slots/{index} - Concurrent modification: record_id=%d", recordID)
			handlers.RespondError(w, http.StatusConflict, msgScheduleConflict)

		default:
			h.logger.Error("DELETE /schedule/records/{id}/slots/{index} - Failed: record_id=%d, index=%d, error=%v",
				recordID, slotIndex, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/records/{id}/slots/{index} - Slot removed: record_id=%d, index=%d, actor=%d",
		recordID, slotIndex, actorID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
