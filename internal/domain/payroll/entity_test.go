package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleStatusCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from CycleStatus
		to   CycleStatus
		want bool
	}{
		{CycleStatusDraft, CycleStatusProcessing, true},
		{CycleStatusDraft, CycleStatusCompleted, false},
		{CycleStatusDraft, CycleStatusLocked, false},
		{CycleStatusProcessing, CycleStatusCompleted, true},
		{CycleStatusProcessing, CycleStatusDraft, true},
		{CycleStatusProcessing, CycleStatusLocked, false},
		{CycleStatusCompleted, CycleStatusProcessing, true},
		{CycleStatusCompleted, CycleStatusLocked, true},
		{CycleStatusCompleted, CycleStatusDraft, false},
		{CycleStatusLocked, CycleStatusDraft, false},
		{CycleStatusLocked, CycleStatusProcessing, false},
		{CycleStatusLocked, CycleStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestCycleStatusIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, CycleStatusDraft.IsValid())
	assert.True(t, CycleStatusProcessing.IsValid())
	assert.True(t, CycleStatusCompleted.IsValid())
	assert.True(t, CycleStatusLocked.IsValid())
	assert.False(t, CycleStatus("ARCHIVED").IsValid())
	assert.False(t, CycleStatus("").IsValid())
}
