package availability

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись доступности не найдена
	ErrRecordNotFound = errors.New("availability.repository: record not found")

	// ErrSlotNotFound возвращается, когда слот с указанным индексом не найден
	ErrSlotNotFound = errors.New("availability.repository: slot not found")

	// ErrSlotAlreadyBooked возвращается при попытке забронировать уже занятый слот
	ErrSlotAlreadyBooked = errors.New("availability.repository: slot is already booked")

	// ErrSlotBooked возвращается при попытке удалить забронированный слот
	ErrSlotBooked = errors.New("availability.repository: cannot remove a booked slot")

	// ErrDuplicateActiveRecord возвращается при нарушении ограничения уникальности
	// активной записи на ключ (doctor, date) / (doctor, dayOfWeek)
	ErrDuplicateActiveRecord = errors.New("availability.repository: active record already exists for this key")

	// ErrActiveRecordConflict возвращается, когда по ключу найдено больше одной
	// активной записи. Это нарушение инварианта хранилища: ошибка логируется
	// и поднимается наверх, автоматического восстановления нет.
	ErrActiveRecordConflict = errors.New("availability.repository: multiple active records found for a single-active key")

	// ErrSerializationFailure возвращается, когда PostgreSQL прервал
	// сериализуемую транзакцию из-за конфликта с конкурентной (код 40001).
	// Для вызывающей стороны это проигрыш гонки, а не внутренняя ошибка.
	ErrSerializationFailure = errors.New("availability.repository: serializable transaction aborted by a concurrent transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
