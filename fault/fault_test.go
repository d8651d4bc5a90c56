package fault

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"invalid", fmt.Errorf("%w: docs must be > 0", ErrInvalidArgument), ExitUsage},
		{"not found", fmt.Errorf("%w: dataset", ErrNotFound), ExitUsage},
		{"process", fmt.Errorf("%w: add", ErrExternalProcess), ExitFailure},
		{"io", fmt.Errorf("%w: write", ErrIO), ExitFailure},
		{"canceled", context.Canceled, ExitFailure},
		{"other", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
