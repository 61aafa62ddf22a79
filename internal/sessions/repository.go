package sessions

import (
	"context"
	"errors"

	"easypark/internal/slots"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists parking sessions. OpenEntry and CloseExit pair the
// session write with the slot status flip in a single transaction so no
// failure can leave a session without its slot or a slot without its session.
type Repository interface {
	OpenEntry(ctx context.Context, session *ParkingSession) error
	CloseExit(ctx context.Context, session *ParkingSession) (slotReleased bool, err error)
	FindOpenSession(ctx context.Context, holderID, facilityID uuid.UUID) (*ParkingSession, error)
	ListByHolderAndFacility(ctx context.Context, holderID, facilityID uuid.UUID) ([]ParkingSession, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// OpenEntry reserves one slot and creates the session as one unit of work.
// ErrNoSlotAvailable rolls the whole thing back: no session row is left
// behind when the pool is exhausted.
func (r *repository) OpenEntry(ctx context.Context, session *ParkingSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := slots.ReserveTx(tx, session.FacilityID, session.VehicleClass); err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

// CloseExit releases one slot and persists the closed session as one unit of
// work. A release that finds no occupied slot means the slot and session
// tables have drifted apart; the exit still completes for the holder and the
// drift is reported through the returned flag.
func (r *repository) CloseExit(ctx context.Context, session *ParkingSession) (bool, error) {
	slotReleased := true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := slots.ReleaseTx(tx, session.FacilityID, session.VehicleClass); err != nil {
			if !errors.Is(err, slots.ErrNoOccupiedSlot) {
				return err
			}
			slotReleased = false
		}
		return tx.Save(session).Error
	})
	if err != nil {
		return false, err
	}
	return slotReleased, nil
}

func (r *repository) FindOpenSession(ctx context.Context, holderID, facilityID uuid.UUID) (*ParkingSession, error) {
	var session ParkingSession
	err := r.db.WithContext(ctx).
		Where("holder_id = ? AND facility_id = ? AND exit_time IS NULL", holderID, facilityID).
		Order("entry_time DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) ListByHolderAndFacility(ctx context.Context, holderID, facilityID uuid.UUID) ([]ParkingSession, error) {
	var result []ParkingSession
	err := r.db.WithContext(ctx).
		Where("holder_id = ? AND facility_id = ?", holderID, facilityID).
		Order("entry_time DESC").
		Limit(100).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
