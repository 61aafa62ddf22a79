package sessions

import (
	"time"

	"easypark/internal/slots"

	"github.com/google/uuid"
)

// EntryResponse is returned when a session is opened at the gate
type EntryResponse struct {
	SessionID     uuid.UUID `json:"session_id"`
	VehicleNumber string    `json:"vehicle_number"`
	EntryTime     time.Time `json:"entry_time"`
}

// ExitResponse is returned when a session is closed and billed
type ExitResponse struct {
	SessionID        uuid.UUID `json:"session_id"`
	VehicleNumber    string    `json:"vehicle_number"`
	DurationHours    float64   `json:"duration_hours"`
	Amount           float64   `json:"amount"`
	PaymentReference string    `json:"payment_reference"`
}

// SessionResponse is one entry in a holder's session history
type SessionResponse struct {
	ID            uuid.UUID  `json:"id"`
	FacilityID    uuid.UUID  `json:"facility_id"`
	VehicleClass  string     `json:"vehicle_class"`
	VehicleNumber string     `json:"vehicle_number"`
	EntryTime     time.Time  `json:"entry_time"`
	ExitTime      *time.Time `json:"exit_time,omitempty"`
	DurationHours *float64   `json:"duration_hours,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Status        string     `json:"status"`
}

// SummaryResponse aggregates live slot counts, configured rates and the
// holder's session history for one facility
type SummaryResponse struct {
	FacilityID uuid.UUID                      `json:"facility_id"`
	Slots      slots.Summary                  `json:"slots"`
	Rates      map[slots.VehicleClass]float64 `json:"rates"`
	Sessions   []SessionResponse              `json:"sessions"`
}

func ToSessionResponse(s *ParkingSession) SessionResponse {
	status := "CLOSED"
	if s.IsOpen() {
		status = "OPEN"
	}
	return SessionResponse{
		ID:            s.ID,
		FacilityID:    s.FacilityID,
		VehicleClass:  string(s.VehicleClass),
		VehicleNumber: s.VehicleNumber,
		EntryTime:     s.EntryTime,
		ExitTime:      s.ExitTime,
		DurationHours: s.DurationHours,
		Amount:        s.Amount,
		Status:        status,
	}
}
