package instance

import "errors"

var (
	// ErrEmptyBatch возвращается при попытке вставить пустой набор экземпляров
	ErrEmptyBatch = errors.New("instance.repository: empty batch")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("instance.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("instance.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("instance.repository: failed to scan row")
)
