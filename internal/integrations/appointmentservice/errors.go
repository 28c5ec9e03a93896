package appointmentservice

import "errors"

var (
	// ErrLedgerUnavailable возвращается, когда журнал приёмов недоступен
	// или вернул неожиданный статус. Вызывающая сторона обязана
	// компенсировать бронирование слота.
	ErrLedgerUnavailable = errors.New("appointmentservice client: ledger unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("appointmentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("appointmentservice client: invalid response")
)
