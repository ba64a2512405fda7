package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/pgerrors"
)

const (
	DefaultMaxRetries      = 3
	DefaultInitialInterval = 20 * time.Millisecond
	DefaultMaxInterval     = 200 * time.Millisecond
)

// TxBeginner источник транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TransactionManager выполняет функцию в транзакции и кладет транзакцию в контекст,
// откуда её берут репозитории через dbmetrics.GetExecutor
//
// Временные ошибки хранилища (serialization failure, deadlock, обрыв соединения)
// повторяются с экспоненциальной задержкой, пока транзакция не зафиксирована.
// Ошибка Commit повторяется только если сервер гарантированно откатил транзакцию.
type TransactionManager struct {
	db              TxBeginner
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          Logger
}

// Option настройка TransactionManager
type Option func(*TransactionManager)

// WithRetry задает число повторов и интервалы задержки
func WithRetry(maxRetries uint64, initialInterval, maxInterval time.Duration) Option {
	return func(m *TransactionManager) {
		m.maxRetries = maxRetries
		if initialInterval > 0 {
			m.initialInterval = initialInterval
		}
		if maxInterval > 0 {
			m.maxInterval = maxInterval
		}
	}
}

// WithLogger задает логгер для повторов и ошибок отката
func WithLogger(logger Logger) Option {
	return func(m *TransactionManager) {
		m.logger = logger
	}
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:              db,
		maxRetries:      DefaultMaxRetries,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов: работаем в уже открытой транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = m.initialInterval
	policy.MaxInterval = m.maxInterval
	policy.MaxElapsedTime = 0

	attempt := 0
	var lastErr error

	operation := func() error {
		attempt++
		err := m.runOnce(ctx, opts, fn)
		lastErr = err
		if err == nil {
			return nil
		}
		if !m.retryable(err) {
			return backoff.Permanent(err)
		}
		if m.logger != nil {
			m.logger.Warn("txmanager: transient error on attempt %d, retrying: %v", attempt, err)
		}
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, m.maxRetries), ctx))
	if err != nil && lastErr != nil {
		// Retry возвращает ctx.Err() при отмене контекста, а вызывающему нужна исходная ошибка
		return lastErr
	}
	return err
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && m.logger != nil {
			m.logger.Error("txmanager: rollback failed: %v (original: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}

	return nil
}

// retryable решает, можно ли повторить транзакцию после ошибки
func (m *TransactionManager) retryable(err error) bool {
	if errors.Is(err, ErrCommit) {
		// Исход COMMIT при обрыве соединения неизвестен, повторяем только явный откат сервером
		code := pgerrors.Code(err)
		return code == pgerrors.CodeSerializationFailure || code == pgerrors.CodeDeadlockDetected
	}
	return pgerrors.IsRetryable(err)
}
