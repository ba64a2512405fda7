package pgerrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization failure", &pq.Error{Code: CodeSerializationFailure}, true},
		{"deadlock", fmt.Errorf("update: %w", &pq.Error{Code: CodeDeadlockDetected}), true},
		{"lock not available", &pq.Error{Code: CodeLockNotAvailable}, true},
		{"connection failure", &pq.Error{Code: "08006"}, true},
		{"admin shutdown", &pq.Error{Code: "57P01"}, true},
		{"query canceled", &pq.Error{Code: CodeQueryCanceled}, true},
		{"bad conn", driver.ErrBadConn, true},
		{"net error", &net.OpError{Op: "read", Err: errors.New("reset")}, true},
		{"deadline", fmt.Errorf("select: %w", context.DeadlineExceeded), true},
		{"unique violation", &pq.Error{Code: CodeUniqueViolation}, false},
		{"syntax error", &pq.Error{Code: "42601"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsRetryable_ExcludesContextErrors(t *testing.T) {
	assert.False(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(fmt.Errorf("op: %w", context.Canceled)))
	assert.True(t, IsRetryable(&pq.Error{Code: CodeSerializationFailure}))
}

func TestIntegrityViolations(t *testing.T) {
	fk := fmt.Errorf("insert: %w", &pq.Error{Code: CodeForeignKeyViolation})
	unique := &pq.Error{Code: CodeUniqueViolation}
	check := &pq.Error{Code: "23514"}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsIntegrityViolation(check))
	assert.False(t, IsIntegrityViolation(&pq.Error{Code: CodeSerializationFailure}))
	assert.False(t, IsIntegrityViolation(errors.New("boom")))
	assert.Equal(t, "", Code(errors.New("boom")))

	overflow := fmt.Errorf("insert: %w", &pq.Error{Code: CodeNumericOutOfRange})
	assert.True(t, IsNumericOutOfRange(overflow))
	assert.False(t, IsIntegrityViolation(overflow))
	assert.False(t, IsTransient(overflow))
}
