package doctorservice

// Doctor профиль врача из справочника DoctorService
type Doctor struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	IsActive  bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от DoctorService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
