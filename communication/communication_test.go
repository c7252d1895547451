package communication

import (
	"errors"
	"fmt"
	"testing"

	"klondike/engine"
	"klondike/placement"

	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		err      error
		code     string
		sentinel error
	}{
		{fmt.Errorf("waste: %w", placement.ErrMalformedInput), CodeMalformedInput, placement.ErrMalformedInput},
		{fmt.Errorf("%w: 8 tableaus", placement.ErrInvalidSlotIndex), CodeInvalidSlotIndex, placement.ErrInvalidSlotIndex},
		{fmt.Errorf("%w: %w", placement.ErrMalformedInput, placement.ErrInvalidSlotIndex), CodeInvalidSlotIndex, placement.ErrInvalidSlotIndex},
		{fmt.Errorf("%w: %q", engine.ErrUnknownSession, "x"), CodeUnknownSession, engine.ErrUnknownSession},
		{engine.ErrNoPosition, CodeNoPosition, engine.ErrNoPosition},
		{errors.New("disk full"), "", nil},
	}
	for _, tt := range tests {
		resp := NewErrorResponse(tt.err)
		require.Equal(t, tt.code, resp.Code, tt.err.Error())
		require.Equal(t, tt.err.Error(), resp.Error)

		back := resp.Err()
		require.EqualError(t, back, tt.err.Error(), "message is kept as sent")
		if tt.sentinel != nil {
			require.ErrorIs(t, back, tt.sentinel)
		}
	}
}
