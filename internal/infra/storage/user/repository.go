package user

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

const table = "users"

var columns = []string{
	"user_id",
	"username",
	"password_hash",
	"salt",
	"role",
	"email",
	"first_name",
	"last_name",
	"created_at",
	"updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repository репозиторий для работы с пользователями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя и возвращает сохраненную строку
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"username",
			"password_hash",
			"salt",
			"role",
			"email",
			"first_name",
			"last_name",
		).
		Values(
			user.Username,
			user.PasswordHash,
			user.Salt,
			user.Role,
			user.Email,
			user.FirstName,
			user.LastName,
		).
		Suffix(returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getByID(ctx, "GetByID", id, "")
}

// GetByIDForUpdate получает пользователя и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return r.GetByID(ctx, id)
	}
	return r.getByID(ctx, "GetByIDForUpdate", id, "FOR UPDATE")
}

func (r *Repository) getByID(ctx context.Context, op string, id int64, lock string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": id})

	if lock != "" {
		selectBuilder = selectBuilder.Suffix(lock)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	user, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %w", ErrScanRow, op, err)
	}

	return user, nil
}

// ExistsByUsername проверяет, занят ли username
func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsByUsername - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByUsername - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// Update обновляет только заданные в UserUpdate колонки
// Каждому полю соответствует своя колонка, набор колонок ограничен структурой
func (r *Repository) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if upd.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table)
	if upd.Username != nil {
		updateBuilder = updateBuilder.Set("username", *upd.Username)
	}
	if upd.PasswordHash != nil {
		updateBuilder = updateBuilder.Set("password_hash", *upd.PasswordHash)
	}
	if upd.Salt != nil {
		updateBuilder = updateBuilder.Set("salt", *upd.Salt)
	}
	if upd.Role != nil {
		updateBuilder = updateBuilder.Set("role", *upd.Role)
	}
	if upd.Email != nil {
		updateBuilder = updateBuilder.Set("email", *upd.Email)
	}
	if upd.FirstName != nil {
		updateBuilder = updateBuilder.Set("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		updateBuilder = updateBuilder.Set("last_name", *upd.LastName)
	}

	query, args, err := updateBuilder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": id}).
		Suffix(returning).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	updated, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет строку пользователя
// Зависимые объекты, бронирования и отзывы должны быть удалены раньше
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"user_id": id}).
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
		return ErrUserNotFound
	}

	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var email sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Salt,
		&user.Role,
		&email,
		&user.FirstName,
		&user.LastName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		user.Email = &email.String
	}
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}
