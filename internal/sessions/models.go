package sessions

import (
	"errors"
	"time"

	"easypark/internal/slots"

	"github.com/google/uuid"
)

// ErrNoOpenSession signals an exit request with no open session to close for
// the holder/facility pair
var ErrNoOpenSession = errors.New("no open parking session found")

// ParkingSession is the record of one vehicle's stay, from entry to exit.
// Created open (exit_time, duration_hours and amount unset); closed exactly
// once on exit and immutable thereafter.
type ParkingSession struct {
	ID            uuid.UUID          `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FacilityID    uuid.UUID          `json:"facility_id" gorm:"type:uuid;not null;index:idx_sessions_holder_facility"`
	HolderID      uuid.UUID          `json:"holder_id" gorm:"type:uuid;not null;index:idx_sessions_holder_facility"`
	VehicleClass  slots.VehicleClass `json:"vehicle_class" gorm:"type:varchar(10);not null"`
	VehicleNumber string             `json:"vehicle_number" gorm:"type:varchar(20);not null"`
	EntryTime     time.Time          `json:"entry_time" gorm:"not null"`
	ExitTime      *time.Time         `json:"exit_time,omitempty"`
	DurationHours *float64           `json:"duration_hours,omitempty"`
	Amount        *float64           `json:"amount,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// TableName sets the table name for ParkingSession
func (ParkingSession) TableName() string {
	return "parking_sessions"
}

// IsOpen reports whether the session is still waiting for its exit
func (s *ParkingSession) IsOpen() bool {
	return s.ExitTime == nil
}
