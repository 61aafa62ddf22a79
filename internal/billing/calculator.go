package billing

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidTimeRange signals an exit timestamp earlier than the entry
// timestamp. Callers must reject the exit instead of recording a negative
// charge.
var ErrInvalidTimeRange = errors.New("exit time is before entry time")

// Compute derives the parked duration in hours and the fee from the stay's
// timestamps and the facility's hourly rate. Both values are rounded to two
// decimal places.
func Compute(entryTime, exitTime time.Time, ratePerHour float64) (durationHours float64, amount float64, err error) {
	if exitTime.Before(entryTime) {
		return 0, 0, ErrInvalidTimeRange
	}

	durationHours = round2(exitTime.Sub(entryTime).Seconds() / 3600)
	amount = round2(durationHours * ratePerHour)
	return durationHours, amount, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
