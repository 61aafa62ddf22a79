package slots

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pool tracks per-facility, per-class slot inventory.
// Reserve and Release are atomic per call: concurrent reserves against a
// single remaining slot resolve to exactly one winner.
type Pool interface {
	Provision(ctx context.Context, facilityID uuid.UUID, class VehicleClass, count int) error
	Reserve(ctx context.Context, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error)
	Release(ctx context.Context, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error)
	Summarize(ctx context.Context, facilityID uuid.UUID) (Summary, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]Slot, error)
}

type pool struct {
	db *gorm.DB
}

func NewPool(db *gorm.DB) Pool {
	return &pool{db: db}
}

func (p *pool) Provision(ctx context.Context, facilityID uuid.UUID, class VehicleClass, count int) error {
	if count <= 0 {
		return nil
	}

	batch := make([]Slot, count)
	for i := range batch {
		batch[i] = Slot{
			FacilityID:   facilityID,
			VehicleClass: class,
			Status:       StatusAvailable,
		}
	}
	return p.db.WithContext(ctx).Create(&batch).Error
}

func (p *pool) Reserve(ctx context.Context, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error) {
	var slotID uuid.UUID
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := ReserveTx(tx, facilityID, class)
		if err != nil {
			return err
		}
		slotID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return slotID, nil
}

func (p *pool) Release(ctx context.Context, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error) {
	var slotID uuid.UUID
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := ReleaseTx(tx, facilityID, class)
		if err != nil {
			return err
		}
		slotID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return slotID, nil
}

// ReserveTx flips exactly one AVAILABLE slot of the facility/class to OCCUPIED
// inside the caller's transaction. Row locking (SKIP LOCKED) keeps two
// concurrent reserves from selecting the same row; the loser of a last-slot
// race sees no row and gets ErrNoSlotAvailable.
func ReserveTx(tx *gorm.DB, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error) {
	var slot Slot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("facility_id = ? AND vehicle_class = ? AND status = ?", facilityID, class, StatusAvailable).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNoSlotAvailable
		}
		return uuid.Nil, err
	}

	if err := tx.Model(&slot).Update("status", StatusOccupied).Error; err != nil {
		return uuid.Nil, err
	}
	return slot.ID, nil
}

// ReleaseTx flips exactly one OCCUPIED slot of the facility/class back to
// AVAILABLE inside the caller's transaction. Slots within a class are
// fungible, so release is matched by class and facility rather than by the
// specific slot a session occupied.
func ReleaseTx(tx *gorm.DB, facilityID uuid.UUID, class VehicleClass) (uuid.UUID, error) {
	var slot Slot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("facility_id = ? AND vehicle_class = ? AND status = ?", facilityID, class, StatusOccupied).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNoOccupiedSlot
		}
		return uuid.Nil, err
	}

	if err := tx.Model(&slot).Update("status", StatusAvailable).Error; err != nil {
		return uuid.Nil, err
	}
	return slot.ID, nil
}

func (p *pool) Summarize(ctx context.Context, facilityID uuid.UUID) (Summary, error) {
	var rows []struct {
		VehicleClass VehicleClass
		Status       SlotStatus
		Count        int
	}

	err := p.db.WithContext(ctx).Model(&Slot{}).
		Select("vehicle_class, status, count(*) as count").
		Where("facility_id = ?", facilityID).
		Group("vehicle_class, status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := Summary{
		ClassCar:  ClassSummary{},
		ClassBike: ClassSummary{},
	}
	for _, row := range rows {
		entry := summary[row.VehicleClass]
		switch row.Status {
		case StatusAvailable:
			entry.Available = row.Count
		case StatusOccupied:
			entry.Occupied = row.Count
		}
		summary[row.VehicleClass] = entry
	}
	return summary, nil
}

func (p *pool) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]Slot, error) {
	var result []Slot
	err := p.db.WithContext(ctx).
		Where("facility_id = ?", facilityID).
		Order("vehicle_class, created_at").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
