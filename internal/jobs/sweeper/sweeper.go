// Package sweeper periodically moves finished product instances to the completed status.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidSchedule возвращается при некорректном cron выражении
var ErrInvalidSchedule = errors.New("sweeper: invalid cron schedule")

const runTimeout = time.Minute

// Sweeper фоновая задача по cron расписанию
type Sweeper struct {
	repo         InstanceRepository
	cache        InstanceCache
	logger       Logger
	timeProvider TimeProvider
	cron         *cron.Cron
}

// New создает задачу с cron расписанием spec (5 полей или @every/@hourly)
func New(repo InstanceRepository, spec string, logger Logger) (*Sweeper, error) {
	s := &Sweeper{
		repo:         repo,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
		cron:         cron.New(),
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}

	return s, nil
}

// WithTimeProvider заменяет источник текущего времени (для тестов)
func (s *Sweeper) WithTimeProvider(tp TimeProvider) *Sweeper {
	s.timeProvider = tp
	return s
}

// WithCache включает сброс кэша списков для продуктов, чьи экземпляры были завершены
func (s *Sweeper) WithCache(cache InstanceCache) *Sweeper {
	s.cache = cache
	return s
}

// Start запускает планировщик в отдельной горутине
func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Info("Sweeper: started")
}

// Stop останавливает планировщик и ждет завершения текущего запуска (не дольше ctx)
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Sweeper: stopped")
	case <-ctx.Done():
		s.logger.Warn("Sweeper: stop timed out: %v", ctx.Err())
	}
}

// RunOnce завершает все активные экземпляры, закончившиеся к текущему моменту,
// и сбрасывает кэш затронутых продуктов. Ошибка кэша не отменяет результат.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	n, products, err := s.repo.MarkCompleted(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("sweeper: mark completed before %s: %w", now.Format(time.RFC3339), err)
	}

	if s.cache != nil {
		for _, p := range products {
			if err := s.cache.Invalidate(ctx, p.TenantID, p.ProductID); err != nil {
				s.logger.Warn("Sweeper: failed to invalidate cache for product=%s: %v", p.ProductID, err)
			}
		}
	}

	return n, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Sweeper: %v", err)
		return
	}
	if n > 0 {
		s.logger.Info("Sweeper: %d instances marked as completed", n)
	}
}
