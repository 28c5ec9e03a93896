package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability.service: invalid input data")

	// ErrRangeTooLong возвращается, когда запрошенный диапазон дат превышает лимит
	ErrRangeTooLong = errors.New("availability.service: date range is too long")

	// ErrStateInvariant возвращается при нарушении инварианта хранилища
	// (больше одной активной записи на ключ). Не восстанавливается автоматически.
	ErrStateInvariant = errors.New("availability.service: store invariant violated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
