package gateevents

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType classifies what happened at the gate
type EventType string

const (
	EventEntryRecorded EventType = "ENTRY_RECORDED"
	EventExitRecorded  EventType = "EXIT_RECORDED"

	// EventSlotInventoryInconsistent flags an exit whose slot release found no
	// occupied slot: the sessions and slots tables have drifted apart and an
	// operator needs to look at the facility's inventory.
	EventSlotInventoryInconsistent EventType = "SLOT_INVENTORY_INCONSISTENT"
)

// GateEvent is the audit record published for every entry, exit and detected
// inconsistency
type GateEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	FacilityID    uuid.UUID `json:"facility_id"`
	HolderID      uuid.UUID `json:"holder_id"`
	SessionID     uuid.UUID `json:"session_id"`
	VehicleClass  string    `json:"vehicle_class"`
	VehicleNumber string    `json:"vehicle_number,omitempty"`
	Amount        *float64  `json:"amount,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewGateEvent builds an event with identity and timestamp filled in
func NewGateEvent(eventType EventType) *GateEvent {
	return &GateEvent{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON serializes the event for the wire
func (e *GateEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one facility to the same partition so
// per-facility ordering is preserved
func (e *GateEvent) PartitionKey() string {
	return e.FacilityID.String()
}
