package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда описание расписания не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrAlreadyPublished возвращается при повторной публикации расписания
	ErrAlreadyPublished = errors.New("schedule.repository: schedule already published")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")

	// ErrPayload возвращается при ошибке (де)сериализации JSONB описания
	ErrPayload = errors.New("schedule.repository: invalid description payload")
)
