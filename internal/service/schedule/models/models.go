package models

import (
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// ErrInvalidSlots возвращается, когда входные слоты не образуют корректный список
var ErrInvalidSlots = errors.New("schedule.models: invalid slots")

// SlotInput входной слот. Время конца опционально: отсутствующее значение
// выводится как начало плюс один час.
type SlotInput struct {
	StartTime string
	EndTime   *string
}

// RangeInput диапазон времени, разворачиваемый в слоты с фиксированным шагом
type RangeInput struct {
	StartTime        string
	EndTime          string
	IncrementMinutes *int // nil = шаг по умолчанию (60 минут)
}

// SetSingleRequest запрос на установку разового расписания на дату.
// Заполняется ровно одно из Slots/Range.
type SetSingleRequest struct {
	DoctorID int64
	Date     types.DateString
	Slots    []SlotInput
	Range    *RangeInput
	ActorID  int64
}

// DaySchedule расписание на один день недели в еженедельном шаблоне
type DaySchedule struct {
	DayOfWeek domain.DayOfWeek
	Slots     []SlotInput
	Range     *RangeInput
}

// SetRecurringRequest запрос на установку еженедельного шаблона.
// Затрагивает только перечисленные дни.
type SetRecurringRequest struct {
	DoctorID int64
	Days     []DaySchedule
	ActorID  int64
}

// BlockDateRequest запрос на блокировку даты (разовая запись без слотов)
type BlockDateRequest struct {
	DoctorID int64
	Date     types.DateString
	ActorID  int64
}

// RemoveSlotRequest запрос на удаление слота из записи
type RemoveSlotRequest struct {
	RecordID  int64
	SlotIndex int
	ActorID   int64
}

// RecordResponse модель записи доступности в ответе сервиса
type RecordResponse struct {
	ID        int64
	DoctorID  int64
	Kind      domain.AvailabilityKind
	DayOfWeek *domain.DayOfWeek
	Date      *types.DateString
	IsActive  bool
	Slots     []SlotResponse
}

// SlotResponse модель слота в ответе сервиса
type SlotResponse struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	IsBooked  bool
}

// FromDomainRecord конвертирует доменную запись в модель ответа
func FromDomainRecord(record *domain.AvailabilityRecord) *RecordResponse {
	slots := make([]SlotResponse, len(record.Slots))
	for i, slot := range record.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			IsBooked:  slot.IsBooked,
		}
	}

	return &RecordResponse{
		ID:        record.ID,
		DoctorID:  record.DoctorID,
		Kind:      record.Kind,
		DayOfWeek: record.DayOfWeek,
		Date:      record.Date,
		IsActive:  record.IsActive,
		Slots:     slots,
	}
}

// BuildDomainSlots конвертирует входные слоты или диапазон в упорядоченный
// список доменных слотов. Недостающее время конца выводится, диапазон
// разворачивается с указанным шагом.
func BuildDomainSlots(slots []SlotInput, rangeInput *RangeInput) ([]domain.TimeSlot, error) {
	if rangeInput != nil {
		if len(slots) > 0 {
			return nil, fmt.Errorf("%w: slots and range are mutually exclusive", ErrInvalidSlots)
		}
		return buildFromRange(rangeInput)
	}

	result := make([]domain.TimeSlot, 0, len(slots))
	for _, input := range slots {
		start, err := types.NewTimeStringFromString(input.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start time %q: %v", ErrInvalidSlots, input.StartTime, err)
		}

		var end types.TimeString
		if input.EndTime != nil {
			// "24:00" допустим как конец последнего слота дня
			if *input.EndTime == "24:00" {
				end = types.TimeString(*input.EndTime)
			} else {
				end, err = types.NewTimeStringFromString(*input.EndTime)
				if err != nil {
					return nil, fmt.Errorf("%w: invalid end time %q: %v", ErrInvalidSlots, *input.EndTime, err)
				}
			}
		} else {
			end, err = domain.InferEndTime(start)
			if err != nil {
				return nil, fmt.Errorf("%w: cannot infer end time for %q: %v", ErrInvalidSlots, input.StartTime, err)
			}
		}

		result = append(result, domain.TimeSlot{StartTime: start, EndTime: end})
	}

	if err := domain.ValidateSlots(result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlots, err)
	}

	return result, nil
}

func buildFromRange(rangeInput *RangeInput) ([]domain.TimeSlot, error) {
	start, err := types.NewTimeStringFromString(rangeInput.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid range start %q: %v", ErrInvalidSlots, rangeInput.StartTime, err)
	}

	// "24:00" допустим как конец диапазона, упирающегося в границу суток
	end := types.TimeString(rangeInput.EndTime)
	if end != "24:00" {
		end, err = types.NewTimeStringFromString(rangeInput.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid range end %q: %v", ErrInvalidSlots, rangeInput.EndTime, err)
		}
	}

	increment := domain.DefaultSlotIncrementMinutes
	if rangeInput.IncrementMinutes != nil {
		increment = *rangeInput.IncrementMinutes
	}
	if increment < domain.MinSlotIncrementMinutes || increment > domain.MaxSlotIncrementMinutes {
		return nil, fmt.Errorf("%w: increment must be between %d and %d minutes",
			ErrInvalidSlots, domain.MinSlotIncrementMinutes, domain.MaxSlotIncrementMinutes)
	}

	starts, err := domain.ExpandRange(start, end, increment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlots, err)
	}

	built, err := domain.BuildSlots(starts, increment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlots, err)
	}

	return built, nil
}
