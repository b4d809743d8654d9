package preview_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
	scheduleModels "github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

// UseCase use case предпросмотра экземпляров без сохранения
type UseCase struct {
	scheduleRepo ScheduleRepository
	expander     Expander
	metrics      Metrics
	opts         Options
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	expander Expander,
	metrics Metrics,
	opts Options,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		scheduleRepo: scheduleRepo,
		expander:     expander,
		metrics:      metrics,
		opts:         opts,
		location:     loc,
		logger:       logger,
	}
}

// Execute разворачивает описание расписания в экземпляры без записи в БД.
// Если описание передано в запросе, оно используется вместо сохраненного
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PreviewSchedule: tenant=%s, product=%s, inline=%t", req.TenantID, req.ProductID, req.Description != nil)

	// 1. Валидация входных данных
	if req.TenantID == uuid.Nil || req.ProductID == uuid.Nil {
		uc.logger.Warn("PreviewSchedule: empty tenant or product id")
		return nil, fmt.Errorf("%w: tenantID and productID are required", ErrInvalidInput)
	}

	// 2. Получаем описание
	desc, err := uc.resolveDescription(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Разворачиваем описание
	result := uc.expander.Expand(desc, req.TenantID, req.ProductID)

	// 4. Применяем фильтры (blackout, сезон)
	result.Instances = recurrence.Apply(result.Instances, desc, uc.opts.Filters)

	uc.metrics.ObserveExpansion(string(desc.ScheduleType), len(result.Instances))

	uc.logger.Info("PreviewSchedule: product=%s, %d instances, truncated=%t",
		req.ProductID, len(result.Instances), result.Truncated)

	return &Response{
		ScheduleType: string(desc.ScheduleType),
		Instances:    result.Instances,
		Truncated:    result.Truncated,
	}, nil
}

func (uc *UseCase) resolveDescription(ctx context.Context, req *Request) (*domain.ScheduleDescription, error) {
	if req.Description != nil {
		desc, err := req.Description.ToDomain(req.TenantID, req.ProductID, uc.location)
		if err != nil {
			uc.logger.Warn("PreviewSchedule: invalid description: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := scheduleModels.Validate(desc); err != nil {
			uc.logger.Warn("PreviewSchedule: validation failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return desc, nil
	}

	desc, err := uc.scheduleRepo.GetByProduct(ctx, req.TenantID, req.ProductID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("PreviewSchedule: schedule for product=%s not found", req.ProductID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("PreviewSchedule: failed to get schedule for product=%s: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	return desc, nil
}
