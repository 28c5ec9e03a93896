package search_doctors

import "errors"

var (
	// ErrInvalidInput возвращается, когда не задан ни один критерий поиска
	// или критерий некорректен
	ErrInvalidInput = errors.New("search_doctors: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_doctors: internal error")
)
