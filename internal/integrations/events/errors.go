package events

import "errors"

var (
	// ErrEncodeEvent возвращается при ошибке сериализации события
	ErrEncodeEvent = errors.New("events.publisher: failed to encode event")

	// ErrWriteMessage возвращается при ошибке отправки сообщения в kafka
	ErrWriteMessage = errors.New("events.publisher: failed to write message")
)
