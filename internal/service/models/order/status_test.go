package order

import (
	"testing"

	"github.com/quickbite/oms/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   Status
		requested Status
		allowed   bool
	}{
		{"waiting accept", StatusWaiting, StatusAccept, true},
		{"waiting reject", StatusWaiting, StatusReject, true},
		{"waiting failed", StatusWaiting, StatusFailed, true},
		{"waiting cannot skip to ready", StatusWaiting, StatusReady, false},
		{"waiting cannot skip to delivered", StatusWaiting, StatusDelivered, false},
		{"accept under process", StatusAccept, StatusUnderProcess, true},
		{"accept cannot go back", StatusAccept, StatusWaiting, false},
		{"under process ready", StatusUnderProcess, StatusReady, true},
		{"ready delivered", StatusReady, StatusDelivered, true},
		{"ready failed", StatusReady, StatusFailed, true},
		{"delivered terminal", StatusDelivered, StatusFailed, false},
		{"reject terminal", StatusReject, StatusAccept, false},
		{"failed terminal", StatusFailed, StatusWaiting, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Transition(tt.current, tt.requested)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.requested, next)

				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsInvalidState(err))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("UNDER_PROCESS")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderProcess, s)

	_, err = ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
