package auditservice

import "time"

// Действия, фиксируемые в журнале аудита
const (
	ActionCreateSingle    = "availability.create_single"
	ActionCreateRecurring = "availability.create_recurring"
	ActionDeactivate      = "availability.deactivate"
	ActionBlockDate       = "availability.block_date"
	ActionRemoveSlot      = "availability.remove_slot"
	ActionBookSlot        = "availability.book_slot"
)

// Результаты операции
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Event событие аудита
type Event struct {
	Action    string    `json:"action"`
	ActorID   int64     `json:"actor_id"`
	DoctorID  int64     `json:"doctor_id,omitempty"`
	RecordID  int64     `json:"record_id,omitempty"`
	Date      string    `json:"date,omitempty"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
