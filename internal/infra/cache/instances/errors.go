package instances

import "errors"

var (
	// ErrCache возвращается при ошибке обращения к redis
	ErrCache = errors.New("instances.cache: redis error")

	// ErrCodec возвращается при ошибке (де)сериализации закэшированного списка
	ErrCodec = errors.New("instances.cache: codec error")
)
