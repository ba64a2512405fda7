package review

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerrors"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

const table = "reviews"

var columns = []string{
	"review_id",
	"property_id",
	"renter_id",
	"rating",
	"comment",
	"created_at",
}

// Repository репозиторий для работы с отзывами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв и возвращает сохраненную строку
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("property_id", "renter_id", "rating", "comment").
		Values(review.PropertyID, review.RenterID, review.Rating, review.Comment).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created, err := scanReview(executor.QueryRowContext(ctx, query, args...))
	if pgerrors.IsForeignKeyViolation(err) {
		return nil, ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByPropertyID получает отзывы объекта, новые первыми
func (r *Repository) GetByPropertyID(ctx context.Context, propertyID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("created_at DESC", "review_id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPropertyID - scan row: %w", ErrScanRow, err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyID - rows error: %w", ErrScanRow, err)
	}

	return reviews, nil
}

// DeleteByRenter удаляет отзывы, написанные пользователем
func (r *Repository) DeleteByRenter(ctx context.Context, renterID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByRenter", squirrel.Eq{"renter_id": renterID})
}

// DeleteByPropertyOwner удаляет отзывы на все объекты владельца
func (r *Repository) DeleteByPropertyOwner(ctx context.Context, ownerID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByPropertyOwner",
		squirrel.Expr("property_id IN (SELECT property_id FROM properties WHERE owner_id = ?)", ownerID))
}

// DeleteByProperty удаляет отзывы объекта
func (r *Repository) DeleteByProperty(ctx context.Context, propertyID int64) (int64, error) {
	return r.deleteWhere(ctx, "DeleteByProperty", squirrel.Eq{"property_id": propertyID})
}

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

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var createdAt sql.NullTime

	err := row.Scan(
		&review.ID,
		&review.PropertyID,
		&review.RenterID,
		&review.Rating,
		&review.Comment,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	review.CreatedAt = createdAt.Time
	return &review, nil
}
