package apperr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"circulation/core/apperr"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	sentinel := apperr.New(apperr.Conflict, "DUP", "duplicate")

	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"Nil", nil, ""},
		{"Sentinel", sentinel, apperr.Conflict},
		{"Wrapped sentinel", fmt.Errorf("create: %w", sentinel), apperr.Conflict},
		{"Deadline", context.DeadlineExceeded, apperr.Transient},
		{"Canceled", fmt.Errorf("query: %w", context.Canceled), apperr.Transient},
		{"Plain", errors.New("boom"), apperr.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestAsTransient(t *testing.T) {
	t.Run("Wraps storage error", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := apperr.AsTransient(cause)

		assert.True(t, apperr.IsKind(err, apperr.Transient))
		assert.ErrorIs(t, err, cause)

		var ae *apperr.Error
		assert.True(t, errors.As(err, &ae))
		assert.True(t, ae.Retryable())
	})

	t.Run("Keeps classified error", func(t *testing.T) {
		sentinel := apperr.New(apperr.NotFound, "NF", "missing")
		assert.Same(t, sentinel, apperr.AsTransient(sentinel))
	})

	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, apperr.AsTransient(nil))
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, apperr.Status(apperr.NotFound))
	assert.Equal(t, http.StatusConflict, apperr.Status(apperr.Conflict))
	assert.Equal(t, http.StatusForbidden, apperr.Status(apperr.Forbidden))
	assert.Equal(t, http.StatusUnprocessableEntity, apperr.Status(apperr.PolicyViolation))
	assert.Equal(t, http.StatusServiceUnavailable, apperr.Status(apperr.Transient))
	assert.Equal(t, http.StatusBadRequest, apperr.Status(apperr.Invalid))
	assert.Equal(t, http.StatusUnauthorized, apperr.Status(apperr.Unauthenticated))
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(apperr.Internal))
}
