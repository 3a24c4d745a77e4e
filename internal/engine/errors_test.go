package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0dillon/HNG1/internal/queryir"
)

func TestError_Error(t *testing.T) {
	err := NewError(ErrCodeNotFound, "String not found")
	assert.Equal(t, "NOT_FOUND: String not found", err.Error())

	wrapped := errInternal(errors.New("boom"))
	assert.Equal(t, "INTERNAL: Internal server error: boom", wrapped.Error())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"engine error", errConflict(), ErrCodeConflict},
		{"wrapped engine error", fmt.Errorf("ctx: %w", errNotFound()), ErrCodeNotFound},
		{"plain error", errors.New("other"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsConflict(errConflict()))
	assert.False(t, IsConflict(errNotFound()))
	assert.False(t, IsConflict(nil))

	assert.True(t, IsNotFound(errNotFound()))
	assert.False(t, IsNotFound(nil))

	argErr := invalidArgument(queryir.NewArgumentError("min_length", "Invalid query parameter types"))
	assert.True(t, IsInvalidArgument(argErr))
	assert.Equal(t, "Invalid query parameter types", argErr.Message)
}

func TestInvalidArgument_NonArgumentErrorIsInternal(t *testing.T) {
	err := invalidArgument(errors.New("unexpected"))
	assert.Equal(t, ErrCodeInternal, err.Code)
}
