package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTwoHours(t *testing.T) {
	entry := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(2 * time.Hour)

	hours, amount, err := Compute(entry, exit, 50)
	require.NoError(t, err)
	assert.Equal(t, 2.0, hours)
	assert.Equal(t, 100.0, amount)
}

func TestComputeFractionalHours(t *testing.T) {
	entry := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)

	hours, amount, err := Compute(entry, exit, 40)
	require.NoError(t, err)
	assert.Equal(t, 2.5, hours)
	assert.Equal(t, 100.0, amount)
}

func TestComputeRoundsToTwoDecimals(t *testing.T) {
	entry := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(10 * time.Minute)

	hours, amount, err := Compute(entry, exit, 55)
	require.NoError(t, err)
	assert.Equal(t, 0.17, hours) // 600s / 3600 = 0.1666...
	assert.Equal(t, 9.35, amount)
}

func TestComputeZeroDuration(t *testing.T) {
	entry := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	hours, amount, err := Compute(entry, entry, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, hours)
	assert.Equal(t, 0.0, amount)
}

func TestComputeExitBeforeEntry(t *testing.T) {
	entry := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(-time.Minute)

	_, _, err := Compute(entry, exit, 50)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}
