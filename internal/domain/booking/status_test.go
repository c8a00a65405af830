package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbemnt/internal/models"
)

func TestTransitions(t *testing.T) {
	b := &models.Booking{Status: string(InitialStatus())}

	require.NoError(t, Confirm(b))
	assert.Equal(t, string(StatusConfirmed), b.Status)

	assert.True(t, errors.Is(Confirm(b), ErrInvalidState))

	require.NoError(t, Complete(b))
	assert.Equal(t, string(StatusCompleted), b.Status)

	assert.True(t, errors.Is(Cancel(b), ErrInvalidState))
}

func TestCancelFromPendingAndConfirmed(t *testing.T) {
	pending := &models.Booking{Status: string(StatusPending)}
	require.NoError(t, Cancel(pending))

	confirmed := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(confirmed))

	assert.Error(t, Complete(pending))
}

func TestIntervalOverlaps(t *testing.T) {
	base := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	iv := Interval{Start: base, End: base.Add(30 * time.Minute)}

	assert.True(t, iv.Overlaps(base.Add(15*time.Minute), base.Add(45*time.Minute)))
	assert.False(t, iv.Overlaps(base.Add(30*time.Minute), base.Add(60*time.Minute)))
	assert.False(t, iv.Overlaps(base.Add(-30*time.Minute), base))
}

func TestStatusBlocks(t *testing.T) {
	assert.True(t, StatusPending.Blocks())
	assert.True(t, StatusCompleted.Blocks())
	assert.False(t, StatusCancelled.Blocks())
}
