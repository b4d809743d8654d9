package events

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeInstancesPublished тип события публикации экземпляров
const EventTypeInstancesPublished = "product_instances.published"

// InstancesPublished событие: для продукта сгенерированы и сохранены экземпляры
type InstancesPublished struct {
	EventID       uuid.UUID  `json:"eventId"`
	TenantID      uuid.UUID  `json:"tenantId"`
	ProductID     uuid.UUID  `json:"productId"`
	ScheduleType  string     `json:"scheduleType"`
	InstanceCount int        `json:"instanceCount"`
	FirstStart    *time.Time `json:"firstStart,omitempty"`
	LastStart     *time.Time `json:"lastStart,omitempty"`
	PublishedAt   time.Time  `json:"publishedAt"`
}
