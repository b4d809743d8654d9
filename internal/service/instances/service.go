package instances

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/instances/models"
)

// Service сервис чтения экземпляров продуктов
type Service struct {
	instanceRepo InstanceRepository
	cache        InstanceCache
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса.
// cache может быть nil - тогда список всегда читается из БД
func NewService(instanceRepo InstanceRepository, cache InstanceCache, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		instanceRepo: instanceRepo,
		cache:        cache,
		location:     loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List возвращает экземпляры продукта.
// Список без фильтров берется из кэша, если он подключен
func (s *Service) List(ctx context.Context, req *models.ListInstancesRequest) (*models.InstanceListResponse, error) {
	list, err := s.list(ctx, req)
	if err != nil {
		return nil, err
	}
	return models.FromDomainInstanceList(list), nil
}

func (s *Service) list(ctx context.Context, req *models.ListInstancesRequest) ([]domain.ProductInstance, error) {
	s.logger.Info("List: fetching instances for tenant=%s, product=%s", req.TenantID, req.ProductID)

	filter, err := req.ToDomainFilter(s.location)
	if err != nil {
		s.logger.Warn("List: invalid filter for product=%s: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cacheable := s.cache != nil && req.IsUnfiltered()

	// 1. Пробуем кэш
	if cacheable {
		cached, ok, err := s.cache.Get(ctx, req.TenantID, req.ProductID)
		if err != nil {
			s.logger.Warn("List: cache get failed for product=%s: %v", req.ProductID, err)
		} else if ok {
			s.logger.Info("List: cache hit for product=%s, %d instances", req.ProductID, len(cached))
			return cached, nil
		}
	}

	// 2. Читаем из БД
	list, err := s.instanceRepo.ListByProduct(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for product=%s: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// 3. Сохраняем в кэш (ошибка кэша не ломает запрос)
	if cacheable {
		if err := s.cache.Set(ctx, req.TenantID, req.ProductID, list); err != nil {
			s.logger.Warn("List: cache set failed for product=%s: %v", req.ProductID, err)
		}
	}

	s.logger.Info("List: fetched %d instances for product=%s", len(list), req.ProductID)
	return list, nil
}

// ExportICS выгружает экземпляры продукта в формате iCalendar
func (s *Service) ExportICS(ctx context.Context, req *models.ListInstancesRequest) ([]byte, error) {
	list, err := s.list(ctx, req)
	if err != nil {
		return nil, err
	}

	data := buildCalendar(req.ProductID.String(), list, s.timeProvider.Now())

	s.logger.Info("ExportICS: exported %d instances for product=%s", len(list), req.ProductID)
	return []byte(data), nil
}

// ValidateRange проверяет диапазон дат относительно ограничений.
// "Сегодня" берется из часового пояса сервиса
func (s *Service) ValidateRange(req *models.ValidateRangeRequest) (*models.ValidateRangeResponse, error) {
	r, constraints, err := req.ToDomainRange(s.location)
	if err != nil {
		s.logger.Warn("ValidateRange: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	constraints.Today = domain.DateOnly(s.timeProvider.Now().In(s.location))

	return models.FromDomainValidation(r, domain.ValidateRange(r, constraints)), nil
}
