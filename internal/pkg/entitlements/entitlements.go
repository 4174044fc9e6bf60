package entitlements

import "time"

// Status is the member's current paid-access standing.
type Status string

const (
	// StatusAdimplente means the member's latest payment covers the current date.
	StatusAdimplente Status = "adimplente"
	// StatusInadimplente means the member has no currently valid paid period.
	StatusInadimplente Status = "inadimplente"
)

// Summary is the client-facing entitlement derivation for one member.
type Summary struct {
	Status     Status     `json:"status"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// Inadimplente is the zero-value summary returned whenever no valid paid
// period exists.
func Inadimplente() Summary {
	return Summary{Status: StatusInadimplente}
}

// Adimplente builds a summary for a paid period ending at expiry.
func Adimplente(expiry time.Time) Summary {
	return Summary{Status: StatusAdimplente, ExpiryDate: &expiry}
}

// IsAdimplente reports whether the summary grants paid access.
func (s Summary) IsAdimplente() bool {
	return s.Status == StatusAdimplente
}
