package preview_schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда описание не передано и не сохранено
	ErrScheduleNotFound = errors.New("preview_schedule: schedule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("preview_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("preview_schedule: internal error")
)
