package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "product_schedules"

var selectColumns = []string{
	"id",
	"tenant_id",
	"product_id",
	"schedule_type",
	"description",
	"published_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий описаний расписаний продуктов
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория расписаний.
// loc - часовой пояс, в котором собираются даты описаний при чтении (nil = UTC)
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// Upsert сохраняет описание расписания продукта.
// Для пары (tenant_id, product_id) хранится одно описание; повторное сохранение
// перезаписывает его, published_at при этом не сбрасывается.
func (r *Repository) Upsert(ctx context.Context, desc *domain.ScheduleDescription) (*domain.ScheduleDescription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertQuery(desc)
	if err != nil {
		return nil, err
	}

	var publishedAt, createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&desc.ID,
		&publishedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	desc.PublishedAt = nullTimePtr(publishedAt)
	desc.CreatedAt = createdAt.Time
	desc.UpdatedAt = updatedAt.Time

	return desc, nil
}

// GetByProduct получает описание расписания продукта.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы публикация не выполнялась дважды.
func (r *Repository) GetByProduct(ctx context.Context, tenantID, productID uuid.UUID) (*domain.ScheduleDescription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetQuery(tenantID, productID, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, err
	}

	var desc domain.ScheduleDescription
	var scheduleType string
	var description []byte
	var publishedAt, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&desc.ID,
		&desc.TenantID,
		&desc.ProductID,
		&scheduleType,
		&description,
		&publishedAt,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProduct - scan schedule: %v", ErrScanRow, err)
	}

	desc.ScheduleType = domain.ScheduleType(scheduleType)
	desc.PublishedAt = nullTimePtr(publishedAt)
	desc.CreatedAt = createdAt.Time
	desc.UpdatedAt = updatedAt.Time

	if err := decodePayload(description, &desc, r.loc); err != nil {
		return nil, fmt.Errorf("GetByProduct: %w", err)
	}

	return &desc, nil
}

// MarkPublished отмечает расписание опубликованным.
// Обновляется только неопубликованное описание: если строк не затронуто - ErrAlreadyPublished.
func (r *Repository) MarkPublished(ctx context.Context, tenantID, productID uuid.UUID, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("published_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "product_id": productID}).
		Where(squirrel.Eq{"published_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPublished - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyPublished
	}

	return nil
}

func buildUpsertQuery(desc *domain.ScheduleDescription) (string, []interface{}, error) {
	data, err := encodePayload(desc)
	if err != nil {
		return "", nil, fmt.Errorf("Upsert: %w", err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"tenant_id",
			"product_id",
			"schedule_type",
			"description",
		).
		Values(
			desc.TenantID,
			desc.ProductID,
			string(desc.ScheduleType),
			data,
		).
		Suffix("ON CONFLICT (tenant_id, product_id) DO UPDATE SET " +
			"schedule_type = EXCLUDED.schedule_type, " +
			"description = EXCLUDED.description, " +
			"updated_at = NOW() " +
			"RETURNING id, published_at, created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

func buildGetQuery(tenantID, productID uuid.UUID, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": tenantID, "product_id": productID})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: GetByProduct - build select query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
