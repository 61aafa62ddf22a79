package slots

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSlotAvailable = errors.New("no slot available")
	ErrNoOccupiedSlot  = errors.New("no occupied slot")
)

// VehicleClass identifies the kind of vehicle a slot can hold
type VehicleClass string

const (
	ClassCar  VehicleClass = "Car"
	ClassBike VehicleClass = "Bike"
)

// ParseVehicleClass normalizes and validates a vehicle class string
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "car":
		return ClassCar, nil
	case "bike":
		return ClassBike, nil
	default:
		return "", fmt.Errorf("invalid vehicle class: %s", s)
	}
}

// SlotStatus of one unit of parking capacity.
// Transitions only AVAILABLE -> OCCUPIED -> AVAILABLE.
type SlotStatus string

const (
	StatusAvailable SlotStatus = "AVAILABLE"
	StatusOccupied  SlotStatus = "OCCUPIED"
)

// Slot is one unit of parking capacity for a vehicle class within a facility
type Slot struct {
	ID           uuid.UUID    `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FacilityID   uuid.UUID    `json:"facility_id" gorm:"type:uuid;index;not null"`
	VehicleClass VehicleClass `json:"vehicle_class" gorm:"type:varchar(10);index;not null"`
	Status       SlotStatus   `json:"status" gorm:"type:varchar(20);check:status IN ('AVAILABLE', 'OCCUPIED');default:'AVAILABLE'"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName sets the table name for Slot
func (Slot) TableName() string {
	return "slots"
}

func (s *Slot) IsAvailable() bool {
	return s.Status == StatusAvailable
}

// ClassSummary holds per-class availability counts for reporting
type ClassSummary struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// Total provisioned slots for the class
func (c ClassSummary) Total() int {
	return c.Available + c.Occupied
}

// Summary maps each vehicle class of a facility to its counts
type Summary map[VehicleClass]ClassSummary
