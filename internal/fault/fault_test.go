package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{err: fmt.Errorf("%w: username cannot be blank", InvalidInput), want: InvalidInput},
		{err: fmt.Errorf("%w: username in use", Conflict), want: Conflict},
		{err: fmt.Errorf("save: %w", fmt.Errorf("%w: bad password", Unauthorized)), want: Unauthorized},
		{err: fmt.Errorf("%w: account", NotFound), want: NotFound},
		{err: errors.New("connection refused"), want: nil},
		{err: nil, want: nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Kind(tt.err))
	}
}
