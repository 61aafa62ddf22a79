package facilities

import (
	"easypark/internal/slots"

	"github.com/google/uuid"
)

// FacilityResponse is the facility detail payload
type FacilityResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CarSlots  int       `json:"car_slots"`
	BikeSlots int       `json:"bike_slots"`
	CarRate   float64   `json:"car_rate"`
	BikeRate  float64   `json:"bike_rate"`
}

// FacilitySummaryResponse combines facility details with the live slot
// availability breakdown per vehicle class
type FacilitySummaryResponse struct {
	Facility FacilityResponse                          `json:"facility"`
	Slots    map[slots.VehicleClass]slots.ClassSummary `json:"slots"`
	Rates    map[slots.VehicleClass]float64            `json:"rates"`
}

func ToFacilityResponse(f *Facility) FacilityResponse {
	return FacilityResponse{
		ID:        f.ID,
		Name:      f.Name,
		Address:   f.Address,
		CarSlots:  f.CarSlots,
		BikeSlots: f.BikeSlots,
		CarRate:   f.CarRate,
		BikeRate:  f.BikeRate,
	}
}
