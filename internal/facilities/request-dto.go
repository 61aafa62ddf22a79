package facilities

// CreateFacilityRequest creates a facility and provisions its slot inventory
type CreateFacilityRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	Address   string  `json:"address" binding:"max=255"`
	CarSlots  int     `json:"car_slots" binding:"min=0"`
	BikeSlots int     `json:"bike_slots" binding:"min=0"`
	CarRate   float64 `json:"car_rate" binding:"min=0"`
	BikeRate  float64 `json:"bike_rate" binding:"min=0"`
}

// UpdateRatesRequest updates a facility's rates or address. Slot capacities
// are fixed at creation time.
type UpdateRatesRequest struct {
	CarRate  *float64 `json:"car_rate,omitempty" binding:"omitempty,min=0"`
	BikeRate *float64 `json:"bike_rate,omitempty" binding:"omitempty,min=0"`
	Address  *string  `json:"address,omitempty" binding:"omitempty,max=255"`
}
