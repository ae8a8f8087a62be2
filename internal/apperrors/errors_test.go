package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/backoffice_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("posting journal: %w", apperrors.NewUnbalancedEntryError("debits %s != credits %s", "500.00", "400.00"))

	assert.True(t, errors.Is(err, apperrors.ErrUnbalancedEntry))
	assert.False(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, apperrors.KindUnbalancedEntry, apperrors.KindOf(err))
	assert.Equal(t, "debits 500.00 != credits 400.00", apperrors.MessageOf(err))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"nil", nil, ""},
		{"plain sentinel", fmt.Errorf("wrap: %w", apperrors.ErrNotFound), apperrors.KindNotFound},
		{"duplicate", apperrors.NewDuplicateError("account code %s exists", "1200"), apperrors.KindDuplicateCode},
		{"missing configuration", apperrors.NewMissingConfigurationError("no AR account"), apperrors.KindMissingConfiguration},
		{"unknown", errors.New("boom"), apperrors.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(apperrors.KindInternal, "failed to begin transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.Equal(t, "failed to begin transaction: connection reset", err.Error())
}
