package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule.service: invalid input data")

	// ErrRecordNotFound возвращается, когда запись доступности не найдена
	ErrRecordNotFound = errors.New("schedule.service: record not found")

	// ErrSlotNotFound возвращается, когда слот с указанным индексом не найден
	ErrSlotNotFound = errors.New("schedule.service: slot not found")

	// ErrSlotBooked возвращается при попытке удалить забронированный слот
	ErrSlotBooked = errors.New("schedule.service: cannot remove a booked slot")

	// ErrConcurrentModification возвращается, когда конкурентная мутация
	// (в том числе материализация разовой записи при бронировании)
	// выиграла гонку за тот же ключ расписания
	ErrConcurrentModification = errors.New("schedule.service: schedule was modified concurrently")

	// ErrStateInvariant возвращается при нарушении инварианта хранилища
	ErrStateInvariant = errors.New("schedule.service: store invariant violated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
