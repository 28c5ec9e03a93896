package book_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот отсутствует
	// в эффективном расписании, уже забронирован или проигран в гонке
	// конкурентного бронирования
	ErrSlotNotAvailable = errors.New("book_slot: slot is not available")

	// ErrLedgerFailed возвращается, когда журнал приёмов не принял запись.
	// Бронирование слота к этому моменту уже компенсировано.
	ErrLedgerFailed = errors.New("book_slot: appointment ledger failed")

	// ErrStateInvariant возвращается при нарушении инварианта хранилища
	// (больше одной активной записи на ключ)
	ErrStateInvariant = errors.New("book_slot: store invariant violated")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
