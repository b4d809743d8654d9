package selection

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// RangeListener receives the committed range after a change
type RangeListener func(domain.DateRange)
