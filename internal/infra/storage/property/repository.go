package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerrors"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const table = "properties"

var columns = []string{
	"property_id",
	"owner_id",
	"name",
	"description",
	"address",
	"price_per_night",
	"rooms",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с объектами недвижимости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает объект и возвращает сохраненную строку
func (r *Repository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"owner_id",
			"name",
			"description",
			"address",
			"price_per_night",
			"rooms",
		).
		Values(
			property.OwnerID,
			property.Name,
			property.Description,
			property.Address,
			property.PricePerNight,
			property.Rooms,
		).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created, err := scanProperty(executor.QueryRowContext(ctx, query, args...))
	if pgerrors.IsForeignKeyViolation(err) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает объект по ID
// Внутри транзакции строка блокируется FOR SHARE: объект не может быть удален,
// пока на него создается бронирование или отзыв
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	lock := ""
	if dbmetrics.IsInTransaction(ctx) {
		lock = "FOR SHARE"
	}
	return r.getByID(ctx, "GetByID", id, lock)
}

// GetByIDForUpdate получает объект и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return r.GetByID(ctx, id)
	}
	return r.getByID(ctx, "GetByIDForUpdate", id, "FOR UPDATE")
}

func (r *Repository) getByID(ctx context.Context, op string, id int64, lock string) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"property_id": id})

	if lock != "" {
		selectBuilder = selectBuilder.Suffix(lock)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	property, err := scanProperty(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan property: %w", ErrScanRow, op, err)
	}

	return property, nil
}

// GetByOwnerID получает все объекты владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("property_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwnerID - scan row: %w", ErrScanRow, err)
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - rows error: %w", ErrScanRow, err)
	}

	return properties, nil
}

// LockByOwner блокирует строки объектов владельца (FOR UPDATE) и возвращает их ID
// Пока блокировка держится, новые бронирования и отзывы на эти объекты не создаются:
// вставка ждет KEY SHARE блокировку внешнего ключа
func (r *Repository) LockByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("property_id").
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("property_id ASC").
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LockByOwner - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LockByOwner - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: LockByOwner - scan row: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: LockByOwner - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// Delete удаляет объект по ID
// Зависимые бронирования и отзывы должны быть удалены раньше
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"property_id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPropertyNotFound
	}

	return nil
}

// DeleteByOwner удаляет все объекты владельца и возвращает их количество
// Ноль удаленных строк - не ошибка
func (r *Repository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByOwner - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByOwner - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByOwner - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var property domain.Property
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&property.ID,
		&property.OwnerID,
		&property.Name,
		&property.Description,
		&property.Address,
		&property.PricePerNight,
		&property.Rooms,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	property.CreatedAt = createdAt.Time
	property.UpdatedAt = updatedAt.Time

	return &property, nil
}
