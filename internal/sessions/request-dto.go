package sessions

// EntryRequest is the non-file part of the multipart gate entry form. The
// plate image arrives as the "plate_image" file field.
type EntryRequest struct {
	FacilityID   string `form:"facility_id" binding:"required,uuid"`
	VehicleClass string `form:"vehicle_class" binding:"required"`
}

// ExitRequest closes the caller's open session at a facility
type ExitRequest struct {
	FacilityID string `json:"facility_id" binding:"required,uuid"`
}
