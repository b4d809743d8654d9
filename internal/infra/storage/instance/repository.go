package instance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "product_instances"

// insertChunkSize ограничивает число строк в одном INSERT (7 параметров на строку, лимит PostgreSQL 65535)
const insertChunkSize = 1000

const returningColumns = "id, tenant_id, product_id, start_time, end_time, max_quantity, available_quantity, status, created_at"

// Repository репозиторий экземпляров продуктов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertMany вставляет экземпляры пачками и возвращает сохраненные строки с ID.
// Для атомарности всего набора вызывать внутри транзакции (txmanager):
// при ошибке любой пачки транзакция откатывается целиком.
func (r *Repository) InsertMany(ctx context.Context, instances []domain.ProductInstance) ([]domain.ProductInstance, error) {
	if len(instances) == 0 {
		return nil, ErrEmptyBatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	saved := make([]domain.ProductInstance, 0, len(instances))

	for from := 0; from < len(instances); from += insertChunkSize {
		to := from + insertChunkSize
		if to > len(instances) {
			to = len(instances)
		}

		query, args, err := buildInsertQuery(instances[from:to])
		if err != nil {
			return nil, err
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: InsertMany - execute insert rows %d..%d: %v", ErrExecQuery, from, to, err)
		}

		chunk, err := scanInstances(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}

		saved = append(saved, chunk...)
	}

	return saved, nil
}

// ListByProduct возвращает экземпляры продукта, отсортированные по времени начала
func (r *Repository) ListByProduct(ctx context.Context, filter domain.InstanceFilter) ([]domain.ProductInstance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProduct - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanInstances(rows)
}

// MarkCompleted переводит активные экземпляры, закончившиеся до before, в статус completed.
// Возвращает количество обновленных строк и затронутые продукты (без повторов).
func (r *Repository) MarkCompleted(ctx context.Context, before time.Time) (int64, []domain.ProductKey, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildMarkCompletedQuery(before)
	if err != nil {
		return 0, nil, err
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: MarkCompleted - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var (
		count int64
		keys  []domain.ProductKey
	)
	seen := make(map[domain.ProductKey]struct{})
	for rows.Next() {
		var key domain.ProductKey
		if err := rows.Scan(&key.TenantID, &key.ProductID); err != nil {
			return 0, nil, fmt.Errorf("%w: MarkCompleted - scan row: %v", ErrScanRow, err)
		}
		count++
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("%w: MarkCompleted - iterate rows: %v", ErrScanRow, err)
	}

	return count, keys, nil
}

func buildMarkCompletedQuery(before time.Time) (string, []interface{}, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(domain.InstanceStatusCompleted)).
		Where(squirrel.Eq{"status": string(domain.InstanceStatusActive)}).
		Where(squirrel.LtOrEq{"end_time": before}).
		Suffix("RETURNING tenant_id, product_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

func buildInsertQuery(batch []domain.ProductInstance) (string, []interface{}, error) {
	builder := psqlbuilder.Insert(tableName).
		Columns(
			"tenant_id",
			"product_id",
			"start_time",
			"end_time",
			"max_quantity",
			"available_quantity",
			"status",
		)

	for _, inst := range batch {
		builder = builder.Values(
			inst.TenantID,
			inst.ProductID,
			inst.StartTime,
			inst.EndTime,
			inst.MaxQuantity,
			inst.AvailableQuantity,
			string(inst.Status),
		)
	}

	query, args, err := builder.Suffix("RETURNING " + returningColumns).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: InsertMany - build insert query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

func buildListQuery(filter domain.InstanceFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(
		"id",
		"tenant_id",
		"product_id",
		"start_time",
		"end_time",
		"max_quantity",
		"available_quantity",
		"status",
		"created_at",
	).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": filter.TenantID, "product_id": filter.ProductID})

	// Фильтрация по периоду
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"start_time": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := builder.OrderBy("start_time ASC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: ListByProduct - build select query: %v", ErrBuildQuery, err)
	}

	return query, args, nil
}

// scanInstances сканирует результаты запроса в слайс экземпляров
func scanInstances(rows *sql.Rows) ([]domain.ProductInstance, error) {
	instances := make([]domain.ProductInstance, 0)

	for rows.Next() {
		var inst domain.ProductInstance
		var status string
		var createdAt sql.NullTime

		err := rows.Scan(
			&inst.ID,
			&inst.TenantID,
			&inst.ProductID,
			&inst.StartTime,
			&inst.EndTime,
			&inst.MaxQuantity,
			&inst.AvailableQuantity,
			&status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanInstances - scan row: %v", ErrScanRow, err)
		}

		inst.Status = domain.InstanceStatus(status)
		inst.CreatedAt = createdAt.Time

		instances = append(instances, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanInstances - rows error: %v", ErrScanRow, err)
	}

	return instances, nil
}
