package recognition

import "strings"

// PlateUnknown is the sentinel plate value used whenever no usable text can
// be extracted from an image. A mis-read plate must never block the entry
// workflow, so recognition degrades to this value instead of failing.
const PlateUnknown = "UNKNOWN"

// Result of one recognition attempt. Ephemeral: attached to a parking session
// at creation, never persisted on its own.
type Result struct {
	RawText  string `json:"raw_text"`
	Plate    string `json:"normalized_plate"`
	Degraded bool   `json:"degraded"`
}

// Unknown returns the degraded fallback result
func Unknown(raw string) Result {
	return Result{RawText: raw, Plate: PlateUnknown, Degraded: true}
}

// NormalizePlate strips every character that is not alphanumeric and
// uppercases the remainder. Returns the empty string when nothing survives.
func NormalizePlate(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		}
	}
	return b.String()
}
