package search_doctors

import (
	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// Request критерии поиска. Должен быть задан хотя бы один.
type Request struct {
	Date *types.DateString // Дата, на которую ищется доступность
	Name *string           // Подстрока имени врача, без учета регистра
}

// DoctorMatch врач, подходящий под критерии поиска, вместе с источником
// его доступности
type DoctorMatch struct {
	DoctorID  int64                    // ID врача
	FullName  string                   // ФИО из справочника врачей
	Specialty string                   // Специальность из справочника
	Kind      domain.AvailabilityKind  // Тип записи, из которой взяты слоты
	Date      *types.DateString        // Дата разовой записи (для kind=single)
	DayOfWeek *domain.DayOfWeek        // День недели шаблона (для kind=recurring)
	Slots     []domain.TimeSlot        // Свободные слоты
}

// Response результат поиска
type Response struct {
	Doctors []DoctorMatch // Найденные врачи, упорядочены по ID
}
