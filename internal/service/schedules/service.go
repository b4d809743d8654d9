package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedules/models"
)

// Service сервис для работы с описаниями расписаний
type Service struct {
	scheduleRepo ScheduleRepository
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний.
// loc - часовой пояс, в котором интерпретируются даты описаний (nil = UTC)
func NewService(scheduleRepo ScheduleRepository, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		scheduleRepo: scheduleRepo,
		location:     loc,
		logger:       logger,
	}
}

// Save сохраняет описание расписания продукта.
// Повторное сохранение перезаписывает описание, но не трогает уже созданные экземпляры
func (s *Service) Save(ctx context.Context, tenantID, productID uuid.UUID, req *models.ScheduleDescription) (*models.ScheduleResponse, error) {
	s.logger.Info("Save: saving schedule for tenant=%s, product=%s, type=%s", tenantID, productID, req.ScheduleType)

	desc, err := req.ToDomain(tenantID, productID, s.location)
	if err != nil {
		s.logger.Warn("Save: invalid description for product=%s: %v", productID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := models.Validate(desc); err != nil {
		s.logger.Warn("Save: validation failed for product=%s: %v", productID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, desc)
	if err != nil {
		s.logger.Error("Save: repository error for product=%s: %v", productID, err)
		return nil, fmt.Errorf("%w: Save - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Save: schedule id=%d saved for product=%s", saved.ID, productID)
	return models.FromDomainSchedule(saved), nil
}

// Get возвращает сохраненное описание расписания продукта
func (s *Service) Get(ctx context.Context, tenantID, productID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for tenant=%s, product=%s", tenantID, productID)

	desc, err := s.scheduleRepo.GetByProduct(ctx, tenantID, productID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule for product=%s not found", productID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for product=%s: %v", productID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(desc), nil
}
