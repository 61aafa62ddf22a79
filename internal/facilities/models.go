package facilities

import (
	"time"

	"easypark/internal/slots"

	"github.com/google/uuid"
)

// Facility is a parking location with its own slot inventory and per-class
// hourly rates
type Facility struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Address   string    `json:"address"`
	CarSlots  int       `json:"car_slots" gorm:"not null;default:0"`
	BikeSlots int       `json:"bike_slots" gorm:"not null;default:0"`
	CarRate   float64   `json:"car_rate" gorm:"not null;default:0"`
	BikeRate  float64   `json:"bike_rate" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Facility
func (Facility) TableName() string {
	return "facilities"
}

// RateFor returns the hourly rate for a vehicle class. An unknown class rates
// at 0 rather than failing; billing for it produces a zero charge.
func (f *Facility) RateFor(class slots.VehicleClass) float64 {
	switch class {
	case slots.ClassCar:
		return f.CarRate
	case slots.ClassBike:
		return f.BikeRate
	default:
		return 0
	}
}

// RateSummary lists the configured hourly rate per vehicle class
func (f *Facility) RateSummary() map[slots.VehicleClass]float64 {
	return map[slots.VehicleClass]float64{
		slots.ClassCar:  f.CarRate,
		slots.ClassBike: f.BikeRate,
	}
}
