package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: Retryable},
		{name: "admin shutdown", err: pgError(pgerrcode.AdminShutdown), want: Retryable},
		{name: "too many connections", err: pgError(pgerrcode.TooManyConnections), want: Retryable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), want: Retryable},
		{name: "wrapped serialization failure", err: fmt.Errorf("tx: %w", pgError(pgerrcode.SerializationFailure)), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: NonRetryable},
		{name: "invalid password", err: pgError(pgerrcode.InvalidPassword), want: NonRetryable},
		{name: "dial refused", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: Retryable},
		{name: "bad conn", err: fmt.Errorf("ping: %w", driver.ErrBadConn), want: Retryable},
		{name: "pgconn connect error", err: &pgconn.ConnectError{}, want: Retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestUserDuplicateError(t *testing.T) {
	assert.Nil(t, userDuplicateError(errors.New("boom")))
	assert.Nil(t, userDuplicateError(pgError(pgerrcode.CheckViolation)))
	assert.ErrorIs(t, userDuplicateError(uniqueViolation(usersEmailConstraint)), ErrEmailAlreadyExists)
	assert.ErrorIs(t, userDuplicateError(uniqueViolation(usersUsernameConstraint)), ErrUsernameAlreadyExists)
}
