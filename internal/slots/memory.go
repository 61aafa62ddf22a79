package slots

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryPool is an in-memory Pool implementation. It backs local development
// and tests where Postgres is not available; atomicity is guaranteed by a
// per-(facility, vehicle class) mutex instead of row locking.
type MemoryPool struct {
	mu    sync.RWMutex
	pools map[poolKey]*classPool
}

type poolKey struct {
	facilityID uuid.UUID
	class      VehicleClass
}

type classPool struct {
	mu    sync.Mutex
	slots []*Slot
}

func NewMemoryPool() *MemoryPool {
	return &MemoryPool{
		pools: make(map[poolKey]*classPool),
	}
}

func (m *MemoryPool) classPoolFor(facilityID uuid.UUID, class VehicleClass) *classPool {
	key := poolKey{facilityID: facilityID, class: class}

	m.mu.RLock()
	cp, ok := m.pools[key]
	m.mu.RUnlock()
	if ok {
		return cp
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cp, ok = m.pools[key]; !ok {
		cp = &classPool{}
		m.pools[key] = cp
	}
	return cp
}

func (m *MemoryPool) Provision(ctx context.Context, facilityID uuid.UUID, class VehicleClass, count int) error {
	cp := m.classPoolFor(facilityID, class)

	cp.mu.Lock()
	defer cp.mu.Unlock()
	for i := 0; i < count; i++ {
		cp.slots = append(cp.slots, &Slot{
			ID:           uuid.New(),
			FacilityID:   facilityID,
			VehicleClass: class,
			Status:       StatusAvailable,
		})
	}
	return nil
}

func (m *MemoryPool) Reserve(ctx context.Context, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error) {
	cp := m.classPoolFor(facilityID, class)

	cp.mu.Lock()
	defer cp.mu.Unlock()
	for _, slot := range cp.slots {
		if slot.Status == StatusAvailable {
			slot.Status = StatusOccupied
			return slot.ID, nil
		}
	}
	return uuid.Nil, ErrNoSlotAvailable
}

func (m *MemoryPool) Release(ctx context.Context, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error) {
	cp := m.classPoolFor(facilityID, class)

	cp.mu.Lock()
	defer cp.mu.Unlock()
	for _, slot := range cp.slots {
		if slot.Status == StatusOccupied {
			slot.Status = StatusAvailable
			return slot.ID, nil
		}
	}
	return uuid.Nil, ErrNoOccupiedSlot
}

func (m *MemoryPool) Summarize(ctx context.Context, facilityID uuid.UUID) (Summary, error) {
	summary := Summary{
		ClassCar:  ClassSummary{},
		ClassBike: ClassSummary{},
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for key, cp := range m.pools {
		if key.facilityID != facilityID {
			continue
		}
		cp.mu.Lock()
		entry := summary[key.class]
		for _, slot := range cp.slots {
			if slot.Status == StatusAvailable {
				entry.Available++
			} else {
				entry.Occupied++
			}
		}
		summary[key.class] = entry
		cp.mu.Unlock()
	}
	return summary, nil
}

func (m *MemoryPool) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]Slot, error) {
	var result []Slot

	m.mu.RLock()
	defer m.mu.RUnlock()
	for key, cp := range m.pools {
		if key.facilityID != facilityID {
			continue
		}
		cp.mu.Lock()
		for _, slot := range cp.slots {
			result = append(result, *slot)
		}
		cp.mu.Unlock()
	}
	return result, nil
}
