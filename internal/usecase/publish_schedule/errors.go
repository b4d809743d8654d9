package publish_schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у продукта нет описания расписания
	ErrScheduleNotFound = errors.New("publish_schedule: schedule not found")

	// ErrAlreadyPublished возвращается при повторной публикации
	ErrAlreadyPublished = errors.New("publish_schedule: schedule already published")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("publish_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("publish_schedule: internal error")
)
