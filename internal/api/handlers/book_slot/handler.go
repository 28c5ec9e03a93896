package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-ScheduleService/internal/api/handlers"
	"github.com/m04kA/HMS-ScheduleService/internal/api/middleware"
	bookSlot "github.com/m04kA/HMS-ScheduleService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgLedgerUnavailable  = "сервис записи на приём временно недоступен, попробуйте позже"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: patient_id=%d, doctor_id=%d, error=%v",
				patientID, req.DoctorID, err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		case errors.Is(err, bookSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: patient_id=%d, doctor_id=%d, date=%s, slot=%s-%s",
				patientID, req.DoctorID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, bookSlot.ErrLedgerFailed):
			h.logger.Error("POST /bookings - Appointment ledger failed: patient_id=%d, doctor_id=%d, error=%v",
				patientID, req.DoctorID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgLedgerUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to book slot: patient_id=%d, doctor_id=%d, error=%v",
				patientID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Slot booked: patient_id=%d, doctor_id=%d, appointment_id=%d",
		patientID, req.DoctorID, result.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
