package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacementStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   PlacementStatus
		expected bool
	}{
		{"Not scheduled", PlacementStatusNotScheduled, true},
		{"Scheduled", PlacementStatusScheduled, true},
		{"Completed", PlacementStatusCompleted, true},
		{"Unknown provider value", PlacementStatus("on-hold"), false},
		{"Empty", PlacementStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.IsValid())
		})
	}
}

func TestPlacementStatus_IsTerminal(t *testing.T) {
	assert.False(t, PlacementStatusNotScheduled.IsTerminal())
	assert.False(t, PlacementStatusScheduled.IsTerminal())
	assert.True(t, PlacementStatusCompleted.IsTerminal())

	// Unknown statuses stay refreshable rather than silently frozen
	assert.False(t, PlacementStatus("on-hold").IsTerminal())
}

func TestRefreshableStatuses(t *testing.T) {
	statuses := RefreshableStatuses()

	assert.Len(t, statuses, 2)
	assert.Contains(t, statuses, PlacementStatusNotScheduled)
	assert.Contains(t, statuses, PlacementStatusScheduled)
	assert.NotContains(t, statuses, PlacementStatusCompleted)
}
