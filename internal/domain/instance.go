package domain

import (
	"time"

	"github.com/google/uuid"
)

// InstanceStatus represents the status of a product instance
type InstanceStatus string

const (
	InstanceStatusActive    InstanceStatus = "active"
	InstanceStatusCompleted InstanceStatus = "completed"
	InstanceStatusCancelled InstanceStatus = "cancelled"
)

// ProductInstance is one concrete bookable occurrence of an offering
type ProductInstance struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	ProductID         uuid.UUID
	StartTime         time.Time
	EndTime           time.Time
	MaxQuantity       int
	AvailableQuantity int
	Status            InstanceStatus
	CreatedAt         time.Time
}

// IsBookable returns true if the instance is active and has free places
func (i *ProductInstance) IsBookable() bool {
	return i.Status == InstanceStatusActive && !i.IsFull()
}

// IsFull returns true if no places are left
func (i *ProductInstance) IsFull() bool {
	return i.AvailableQuantity <= 0
}

// InstanceFilter filters instances of one product
type InstanceFilter struct {
	TenantID  uuid.UUID
	ProductID uuid.UUID
	From      *time.Time      // instances starting at or after From
	To        *time.Time      // instances starting at or before To
	Status    *InstanceStatus // nil = any status
}

// ProductKey identifies the instances of one product
type ProductKey struct {
	TenantID  uuid.UUID
	ProductID uuid.UUID
}
