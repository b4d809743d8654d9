package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidStatus возвращается при неизвестном статусе экземпляра
	ErrInvalidStatus = errors.New("invalid instance status")
)

// Request модели

// ListInstancesRequest запрос списка экземпляров продукта
type ListInstancesRequest struct {
	TenantID  uuid.UUID
	ProductID uuid.UUID
	From      *string // YYYY-MM-DD, включительно
	To        *string // YYYY-MM-DD, включительно
	Status    *string
}

// IsUnfiltered возвращает true, если запрос без фильтров (такой список кэшируется)
func (r *ListInstancesRequest) IsUnfiltered() bool {
	return r.From == nil && r.To == nil && r.Status == nil
}

// ToDomainFilter конвертирует запрос в доменный фильтр.
// To расширяется до конца дня, чтобы экземпляры этого дня попали в выборку.
func (r *ListInstancesRequest) ToDomainFilter(loc *time.Location) (domain.InstanceFilter, error) {
	if loc == nil {
		loc = time.UTC
	}

	filter := domain.InstanceFilter{TenantID: r.TenantID, ProductID: r.ProductID}

	if r.From != nil {
		from, err := time.ParseInLocation(domain.DateFormat, *r.From, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: from=%q", ErrInvalidDate, *r.From)
		}
		filter.From = &from
	}

	if r.To != nil {
		to, err := time.ParseInLocation(domain.DateFormat, *r.To, loc)
		if err != nil {
			return filter, fmt.Errorf("%w: to=%q", ErrInvalidDate, *r.To)
		}
		endOfDay := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &endOfDay
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ValidateRangeRequest запрос проверки диапазона дат
type ValidateRangeRequest struct {
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	MinDate   *string `json:"minDate,omitempty"`
	MaxDate   *string `json:"maxDate,omitempty"`
	AllowPast bool    `json:"allowPast"`
}

// Response модели

// InstanceResponse экземпляр продукта
type InstanceResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"productId"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	MaxQuantity       int    `json:"maxQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
	Status            string `json:"status"`
	Bookable          bool   `json:"bookable"`
}

// InstanceListResponse список экземпляров
type InstanceListResponse struct {
	Instances []InstanceResponse `json:"instances"`
	Total     int                `json:"total"`
}

// ValidateRangeResponse результат проверки диапазона дат
type ValidateRangeResponse struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
	State   string   `json:"state"`
	Days    int      `json:"days"`
}

// ToDomainStatus конвертирует строку в статус экземпляра
func ToDomainStatus(s string) (domain.InstanceStatus, error) {
	status := domain.InstanceStatus(s)
	switch status {
	case domain.InstanceStatusActive, domain.InstanceStatusCompleted, domain.InstanceStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// FromDomainInstance конвертирует доменный экземпляр в ответ
func FromDomainInstance(i *domain.ProductInstance) InstanceResponse {
	return InstanceResponse{
		ID:                i.ID.String(),
		ProductID:         i.ProductID.String(),
		StartTime:         i.StartTime.Format(time.RFC3339),
		EndTime:           i.EndTime.Format(time.RFC3339),
		MaxQuantity:       i.MaxQuantity,
		AvailableQuantity: i.AvailableQuantity,
		Status:            string(i.Status),
		Bookable:          i.IsBookable(),
	}
}

// FromDomainInstanceList конвертирует список экземпляров в ответ
func FromDomainInstanceList(list []domain.ProductInstance) *InstanceListResponse {
	resp := &InstanceListResponse{
		Instances: make([]InstanceResponse, 0, len(list)),
		Total:     len(list),
	}
	for i := range list {
		resp.Instances = append(resp.Instances, FromDomainInstance(&list[i]))
	}
	return resp
}

// ToDomainRange собирает диапазон и ограничения из запроса.
// Отсутствующий startDate дает пустой диапазон, отсутствующий endDate - диапазон с одной датой.
func (r *ValidateRangeRequest) ToDomainRange(loc *time.Location) (domain.DateRange, domain.RangeConstraints, error) {
	var c domain.RangeConstraints

	start, err := parseOptionalDate(r.StartDate, loc)
	if err != nil {
		return domain.ClearRange(), c, fmt.Errorf("startDate: %w", err)
	}
	end, err := parseOptionalDate(r.EndDate, loc)
	if err != nil {
		return domain.ClearRange(), c, fmt.Errorf("endDate: %w", err)
	}
	if c.MinDate, err = parseOptionalDate(r.MinDate, loc); err != nil {
		return domain.ClearRange(), c, fmt.Errorf("minDate: %w", err)
	}
	if c.MaxDate, err = parseOptionalDate(r.MaxDate, loc); err != nil {
		return domain.ClearRange(), c, fmt.Errorf("maxDate: %w", err)
	}
	c.AllowPast = r.AllowPast

	switch {
	case start == nil:
		return domain.ClearRange(), c, nil
	case end == nil:
		return domain.AnchorRange(*start), c, nil
	default:
		return domain.CreateRange(*start, *end), c, nil
	}
}

// FromDomainValidation конвертирует результат проверки в ответ
func FromDomainValidation(r domain.DateRange, v domain.RangeValidation) *ValidateRangeResponse {
	errs := v.Errors
	if errs == nil {
		errs = []string{}
	}
	return &ValidateRangeResponse{
		IsValid: v.IsValid,
		Errors:  errs,
		State:   r.State().String(),
		Days:    r.Days(),
	}
}

func parseOptionalDate(s *string, loc *time.Location) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(domain.DateFormat, *s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, *s)
	}
	return &t, nil
}
