package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewAppError(ErrTypeSchema, "orders: required column \"amount\" not found", nil),
			expected: `[SCHEMA] orders: required column "amount" not found`,
		},
		{
			name:     "with cause",
			err:      NewStorageError("open orders.csv", errors.New("permission denied")),
			expected: "[STORAGE] open orders.csv: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("write analytics table", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("export: %w", err), &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestIsType(t *testing.T) {
	schemaErr := NewSchemaError("orders", "order_id")
	wrapped := fmt.Errorf("load stage: %w", schemaErr)

	assert.True(t, IsType(schemaErr, ErrTypeSchema))
	assert.True(t, IsType(wrapped, ErrTypeSchema))
	assert.False(t, IsType(wrapped, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeSchema))
}

func TestNewSchemaError_Context(t *testing.T) {
	err := NewSchemaError("users", "country")

	assert.Equal(t, "users", err.Context["table"])
	assert.Equal(t, "country", err.Context["column"])
}

func TestWithContext(t *testing.T) {
	err := NewQualityWarning("drop rate 0.25 exceeds threshold 0.10").
		WithContext("drop_rate", 0.25).
		WithContext("threshold", 0.10)

	assert.Equal(t, 0.25, err.Context["drop_rate"])
	assert.Equal(t, 0.10, err.Context["threshold"])
}
