package billing

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// ErrSessionOpen signals an attempt to build a payment reference for a
// session that has not been billed yet.
var ErrSessionOpen = errors.New("session is still open, no amount to reference")

// ReferenceBuilder produces deterministic UPI-style settlement references for
// closed parking sessions. The reference string is consumed downstream by a
// payment-code rendering service.
type ReferenceBuilder struct {
	PayeeVPA  string
	PayeeName string
	Currency  string
}

func NewReferenceBuilder(payeeVPA, payeeName, currency string) *ReferenceBuilder {
	return &ReferenceBuilder{
		PayeeVPA:  payeeVPA,
		PayeeName: payeeName,
		Currency:  currency,
	}
}

// Build encodes payee, amount, currency and a session note into a UPI payment
// URI. The amount pointer mirrors the session column: nil means the session is
// still open and no reference may be issued.
func (b *ReferenceBuilder) Build(sessionID uuid.UUID, amount *float64) (string, error) {
	if amount == nil {
		return "", ErrSessionOpen
	}

	params := url.Values{}
	params.Set("pa", b.PayeeVPA)
	params.Set("pn", b.PayeeName)
	params.Set("am", fmt.Sprintf("%.2f", *amount))
	params.Set("cu", b.Currency)
	params.Set("tn", fmt.Sprintf("Parking Payment for Session:%s", sessionID))

	// url.Values.Encode sorts keys, so the same session always yields the
	// same reference string
	return "upi://pay?" + params.Encode(), nil
}
