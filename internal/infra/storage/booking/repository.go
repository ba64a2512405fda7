package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const table = "bookings"

// columns порядок колонок совпадает с порядком полей в scanBooking
var columns = []string{
	"booking_id",
	"property_id",
	"renter_id",
	"start_date",
	"end_date",
	"total_price",
	"status",
	"created_at",
	"updated_at",
}

// returning суффикс INSERT/UPDATE, возвращающий строку целиком
var returning = "RETURNING " + strings.Join(columns, ", ")

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование и возвращает сохраненную строку
// Вставка и чтение результата выполняются одним запросом (INSERT ... RETURNING),
// поэтому ситуация "строка вставлена, но не прочитана" невозможна
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"property_id",
			"renter_id",
			"start_date",
			"end_date",
			"total_price",
			"status",
		).
		Values(
			booking.PropertyID,
			booking.RenterID,
			domain.DateOnly(booking.StartDate),
			domain.DateOnly(booking.EndDate),
			booking.TotalPrice,
			booking.Status,
		).
		Suffix(returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// UpdateStatusFromPending переводит бронирование из Pending в target одним запросом
// (compare-and-swap: UPDATE ... WHERE status = 'Pending').
// Из двух одновременных вызовов для одного бронирования строку обновит только первый,
// второй получит ErrNotPending. ErrNotPending не различает "нет такой строки" и
// "статус уже не Pending" - это делает вызывающий код через GetByID.
func (r *Repository) UpdateStatusFromPending(ctx context.Context, id int64, target domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", target).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Suffix(returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusFromPending - build update query: %w", ErrBuildQuery, err)
	}

	updated, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatusFromPending - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// List получает бронирования по фильтру (объект и/или арендатор, статус)
// Сортировка: сначала ближайшие заезды
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_date ASC", "booking_id ASC")

	if filter.PropertyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"property_id": *filter.PropertyID})
	}
	if filter.RenterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"renter_id": *filter.RenterID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// DeleteByRenter удаляет бронирования, сделанные пользователем
func (r *Repository) DeleteByRenter(ctx context.Context, renterID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByRenter", squirrel.Eq{"renter_id": renterID})
}

// DeleteByPropertyOwner удаляет бронирования всех объектов владельца
func (r *Repository) DeleteByPropertyOwner(ctx context.Context, ownerID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByPropertyOwner",
		squirrel.Expr("property_id IN (SELECT property_id FROM properties WHERE owner_id = ?)", ownerID))
}

// DeleteByProperty удаляет бронирования объекта
func (r *Repository) DeleteByProperty(ctx context.Context, propertyID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByProperty", squirrel.Eq{"property_id": propertyID})
}

// deleteWhere удаляет строки по условию и возвращает их количество
// Ноль удаленных строк - не ошибка
func (r *Repository) deleteWhere(ctx context.Context, op string, pred squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %w", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.PropertyID,
		&booking.RenterID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.TotalPrice,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
