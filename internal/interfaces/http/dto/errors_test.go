package dto

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stockledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "validation error maps to 400",
			err:      shared.NewValidationError("quantity", "warehouseId"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped validation error maps to 400",
			err:      fmt.Errorf("create movement: %w", shared.NewValidationError("type")),
			expected: http.StatusBadRequest,
		},
		{
			name:     "insufficient stock maps to 500",
			err:      shared.ErrInsufficientStock,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "not found maps to 500",
			err:      shared.ErrNotFound,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "unsupported operation maps to 500",
			err:      shared.ErrUnsupportedOperation,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "unknown error maps to 500",
			err:      errors.New("driver: bad connection"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForError(tt.err))
		})
	}
}
