package publish_schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/events"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
)

// UseCase use case публикации расписания: генерация и сохранение экземпляров
type UseCase struct {
	scheduleRepo ScheduleRepository
	instanceRepo InstanceRepository
	expander     Expander
	cache        InstanceCache
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil
func NewUseCase(
	scheduleRepo ScheduleRepository,
	instanceRepo InstanceRepository,
	expander Expander,
	cache InstanceCache,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		instanceRepo: instanceRepo,
		expander:     expander,
		cache:        cache,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute публикует расписание продукта.
// Описание потребляется один раз: строка блокируется в транзакции, экземпляры
// сохраняются вместе с отметкой published_at, повторная публикация отклоняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PublishSchedule: tenant=%s, product=%s", req.TenantID, req.ProductID)

	// 1. Валидация входных данных
	if req.TenantID == uuid.Nil || req.ProductID == uuid.Nil {
		uc.logger.Warn("PublishSchedule: empty tenant or product id")
		return nil, fmt.Errorf("%w: tenantID and productID are required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var resp *Response

	// 3. Генерация и запись в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем описание с блокировкой строки
		desc, err := uc.scheduleRepo.GetByProduct(txCtx, req.TenantID, req.ProductID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("PublishSchedule: schedule for product=%s not found", req.ProductID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("PublishSchedule: failed to get schedule for product=%s: %v", req.ProductID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 3.2. Проверяем, что описание еще не опубликовано
		if desc.IsPublished() {
			uc.logger.Warn("PublishSchedule: product=%s already published at %s", req.ProductID, desc.PublishedAt)
			return ErrAlreadyPublished
		}

		// 3.3. Разворачиваем описание и применяем фильтры
		result := uc.expander.Expand(desc, req.TenantID, req.ProductID)
		instances := recurrence.Apply(result.Instances, desc, uc.opts.Filters)
		uc.metrics.ObserveExpansion(string(desc.ScheduleType), len(instances))

		// 3.4. Сохраняем экземпляры (пустой результат допустим, например on-demand)
		saved := []domain.ProductInstance{}
		if len(instances) > 0 {
			saved, err = uc.instanceRepo.InsertMany(txCtx, instances)
			if err != nil {
				uc.logger.Error("PublishSchedule: failed to insert %d instances for product=%s: %v",
					len(instances), req.ProductID, err)
				return fmt.Errorf("%w: failed to insert instances: %v", ErrInternal, err)
			}
			// Порядок строк RETURNING не гарантирован
			sortByStart(saved)
		}

		// 3.5. Отмечаем описание опубликованным
		if err := uc.scheduleRepo.MarkPublished(txCtx, req.TenantID, req.ProductID, now); err != nil {
			if errors.Is(err, scheduleRepo.ErrAlreadyPublished) {
				uc.logger.Warn("PublishSchedule: product=%s was published concurrently", req.ProductID)
				return ErrAlreadyPublished
			}
			uc.logger.Error("PublishSchedule: failed to mark product=%s published: %v", req.ProductID, err)
			return fmt.Errorf("%w: failed to mark published: %v", ErrInternal, err)
		}

		resp = &Response{
			ScheduleType: string(desc.ScheduleType),
			Instances:    saved,
			Truncated:    result.Truncated,
			PublishedAt:  now,
		}
		return nil
	})
	if err != nil {
		uc.metrics.IncPublish(publishResult(err))
		if errors.Is(err, ErrScheduleNotFound) || errors.Is(err, ErrAlreadyPublished) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("PublishSchedule: transaction failed for product=%s: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// 4. После коммита: сбрасываем кэш и отправляем событие (ошибки не откатывают публикацию)
	uc.afterCommit(ctx, req, resp)

	uc.metrics.IncPublish(resultSuccess)
	uc.logger.Info("PublishSchedule: product=%s published, %d instances, truncated=%t",
		req.ProductID, len(resp.Instances), resp.Truncated)

	return resp, nil
}

func (uc *UseCase) afterCommit(ctx context.Context, req *Request, resp *Response) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.TenantID, req.ProductID); err != nil {
			uc.logger.Warn("PublishSchedule: failed to invalidate cache for product=%s: %v", req.ProductID, err)
		}
	}

	event := events.InstancesPublished{
		TenantID:      req.TenantID,
		ProductID:     req.ProductID,
		ScheduleType:  resp.ScheduleType,
		InstanceCount: len(resp.Instances),
		PublishedAt:   resp.PublishedAt,
	}
	event.FirstStart, event.LastStart = startBounds(resp.Instances)

	if err := uc.publisher.PublishInstancesPublished(ctx, event); err != nil {
		uc.logger.Warn("PublishSchedule: failed to publish event for product=%s: %v", req.ProductID, err)
	}
}

func sortByStart(instances []domain.ProductInstance) {
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].StartTime.Before(instances[j].StartTime)
	})
}

// startBounds возвращает начало первого и последнего экземпляра упорядоченного списка
func startBounds(instances []domain.ProductInstance) (*time.Time, *time.Time) {
	if len(instances) == 0 {
		return nil, nil
	}
	first, last := instances[0].StartTime, instances[len(instances)-1].StartTime
	return &first, &last
}

func publishResult(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyPublished):
		return resultAlreadyPublished
	case errors.Is(err, ErrScheduleNotFound):
		return resultNotFound
	default:
		return resultError
	}
}
