package appointmentservice

// CreateAppointmentRequest запрос на создание записи о приёме
type CreateAppointmentRequest struct {
	DoctorID  int64  `json:"doctor_id"`
	PatientID int64  `json:"patient_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

// Appointment запись о приёме из журнала
type Appointment struct {
	ID        int64  `json:"id"`
	DoctorID  int64  `json:"doctor_id"`
	PatientID int64  `json:"patient_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от AppointmentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
