package sgemmbench

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredErrors(t *testing.T) {
	cause := errors.New("disk on fire")

	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		wantOp   string
		checkFn  func(error) bool
	}{
		{
			name:     "Invalid Arg Error",
			err:      NewInvalidArgError("Config", "size must be positive"),
			wantType: ErrTypeInvalidArg,
			wantOp:   "Config",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Shape Mismatch",
			err:      ErrShapeMismatch,
			wantType: ErrTypeInvalidArg,
			wantOp:   "Multiply",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Execution Error",
			err:      NewExecutionError("Multiply", "sgemm failed", cause),
			wantType: ErrTypeExecution,
			wantOp:   "Multiply",
			checkFn:  IsExecutionError,
		},
		{
			name:     "IO Error",
			err:      NewIOError("SaveMatrix", "creating data/A.txt", cause),
			wantType: ErrTypeIO,
			wantOp:   "SaveMatrix",
			checkFn:  IsIOError,
		},
		{
			name:     "Not Implemented Error",
			err:      NewNotImplementedError("RunConfig", "backend openblas", cause),
			wantType: ErrTypeNotImplemented,
			wantOp:   "RunConfig",
			checkFn:  IsNotImplementedError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var be *BenchError
			if !errors.As(tt.err, &be) {
				t.Fatalf("expected *BenchError, got %T", tt.err)
			}
			assert.Equal(t, tt.wantType, be.Type)
			assert.Equal(t, tt.wantOp, be.Op)
			assert.True(t, tt.checkFn(tt.err))
			assert.Contains(t, tt.err.Error(), tt.wantType.String())

			// Type checks see through fmt wrapping
			assert.True(t, tt.checkFn(fmt.Errorf("outer: %w", tt.err)))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := NewIOError("SaveMatrix", "creating data/A.txt", os.ErrNotExist)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "caused by")

	assert.False(t, IsIOError(os.ErrNotExist))
	assert.False(t, IsInvalidArgError(nil))
	assert.Equal(t, "Unknown", ErrorType(99).String())
}
