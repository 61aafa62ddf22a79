package slots

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCountsMatchProvisioned(t *testing.T) {
	ctx := context.Background()
	pool := NewMemoryPool()
	facilityID := uuid.New()

	require.NoError(t, pool.Provision(ctx, facilityID, ClassCar, 5))
	require.NoError(t, pool.Provision(ctx, facilityID, ClassBike, 3))

	summary, err := pool.Summarize(ctx, facilityID)
	require.NoError(t, err)
	assert.Equal(t, 5, summary[ClassCar].Total())
	assert.Equal(t, 3, summary[ClassBike].Total())

	// available + occupied stays equal to total through reserve/release churn
	_, err = pool.Reserve(ctx, facilityID, ClassCar)
	require.NoError(t, err)
	_, err = pool.Reserve(ctx, facilityID, ClassCar)
	require.NoError(t, err)
	_, err = pool.Release(ctx, facilityID, ClassCar)
	require.NoError(t, err)

	summary, err = pool.Summarize(ctx, facilityID)
	require.NoError(t, err)
	assert.Equal(t, 5, summary[ClassCar].Total())
	assert.Equal(t, 4, summary[ClassCar].Available)
	assert.Equal(t, 1, summary[ClassCar].Occupied)
	assert.Equal(t, 3, summary[ClassBike].Available)
}

func TestReserveThenReleaseRestoresAvailability(t *testing.T) {
	ctx := context.Background()
	pool := NewMemoryPool()
	facilityID := uuid.New()

	require.NoError(t, pool.Provision(ctx, facilityID, ClassBike, 2))

	before, err := pool.Summarize(ctx, facilityID)
	require.NoError(t, err)

	_, err = pool.Reserve(ctx, facilityID, ClassBike)
	require.NoError(t, err)
	_, err = pool.Release(ctx, facilityID, ClassBike)
	require.NoError(t, err)

	after, err := pool.Summarize(ctx, facilityID)
	require.NoError(t, err)
	assert.Equal(t, before[ClassBike].Available, after[ClassBike].Available)
}

func TestReserveExhaustedPool(t *testing.T) {
	ctx := context.Background()
	pool := NewMemoryPool()
	facilityID := uuid.New()

	require.NoError(t, pool.Provision(ctx, facilityID, ClassCar, 1))

	_, err := pool.Reserve(ctx, facilityID, ClassCar)
	require.NoError(t, err)

	_, err = pool.Reserve(ctx, facilityID, ClassCar)
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestReleaseWithNoOccupiedSlot(t *testing.T) {
	ctx := context.Background()
	pool := NewMemoryPool()
	facilityID := uuid.New()

	require.NoError(t, pool.Provision(ctx, facilityID, ClassCar, 1))

	_, err := pool.Release(ctx, facilityID, ClassCar)
	assert.ErrorIs(t, err, ErrNoOccupiedSlot)
}

func TestConcurrentReservesLastSlot(t *testing.T) {
	ctx := context.Background()
	pool := NewMemoryPool()
	facilityID := uuid.New()

	require.NoError(t, pool.Provision(ctx, facilityID, ClassCar, 1))

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = pool.Reserve(ctx, facilityID, ClassCar)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrNoSlotAvailable)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent reserve must win the last slot")

	summary, err := pool.Summarize(ctx, facilityID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary[ClassCar].Available)
	assert.Equal(t, 1, summary[ClassCar].Occupied)
}

func TestPoolsAreIsolatedPerFacilityAndClass(t *testing.T) {
	ctx := context.Background()
	pool := NewMemoryPool()
	facilityA := uuid.New()
	facilityB := uuid.New()

	require.NoError(t, pool.Provision(ctx, facilityA, ClassCar, 1))
	require.NoError(t, pool.Provision(ctx, facilityB, ClassCar, 1))

	_, err := pool.Reserve(ctx, facilityA, ClassCar)
	require.NoError(t, err)

	// facility B's inventory is untouched by A's reservation
	summary, err := pool.Summarize(ctx, facilityB)
	require.NoError(t, err)
	assert.Equal(t, 1, summary[ClassCar].Available)

	// bike pool of facility A never existed, so reserve fails
	_, err = pool.Reserve(ctx, facilityA, ClassBike)
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}
