package search_availability

import (
	searchDoctors "github.com/m04kA/HMS-ScheduleService/internal/usecase/search_doctors"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DoctorMatchResponse HTTP модель найденного врача
type DoctorMatchResponse struct {
	DoctorID  int64          `json:"doctorId"`
	FullName  string         `json:"fullName,omitempty"`
	Specialty string         `json:"specialty,omitempty"`
	Kind      string         `json:"kind"`
	Date      *string        `json:"date,omitempty"`
	DayOfWeek *string        `json:"dayOfWeek,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// SearchResponse HTTP модель результата поиска
type SearchResponse struct {
	Doctors []DoctorMatchResponse `json:"doctors"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchDoctors.Response) *SearchResponse {
	doctors := make([]DoctorMatchResponse, len(resp.Doctors))
	for i, match := range resp.Doctors {
		slots := make([]SlotResponse, len(match.Slots))
		for j, slot := range match.Slots {
			slots[j] = SlotResponse{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
			}
		}

		entry := DoctorMatchResponse{
			DoctorID:  match.DoctorID,
			FullName:  match.FullName,
			Specialty: match.Specialty,
			Kind:      string(match.Kind),
			Slots:     slots,
		}
		if match.Date != nil {
			date := match.Date.String()
			entry.Date = &date
		}
		if match.DayOfWeek != nil {
			day := string(*match.DayOfWeek)
			entry.DayOfWeek = &day
		}

		doctors[i] = entry
	}

	return &SearchResponse{Doctors: doctors}
}
