package model

import (
	"fmt"
	"strings"
)

type RejectionCode string

const (
	SeatsExhausted        RejectionCode = "seats_exhausted"
	PerGuestLimitExceeded RejectionCode = "per_guest_limit_exceeded"
	MissingRequiredField  RejectionCode = "missing_required_field"
)

// RequiredField names a guest field an event may require.
type RequiredField string

const (
	FieldName  RequiredField = "name"
	FieldEmail RequiredField = "email"
	FieldPhone RequiredField = "phone"
)

// Rejection is a user-correctable reason for refusing a reservation.
// Limit carries the remaining seats or the per-guest cap, and is 0 for
// missing fields.
type Rejection struct {
	Code  RejectionCode `json:"code"`
	Field string        `json:"field"`
	Limit int           `json:"limit"`
}

func (r Rejection) Message() string {
	switch r.Code {
	case SeatsExhausted:
		if r.Limit == 1 {
			return "Not enough seats available. Only 1 seat left."
		}
		return fmt.Sprintf("Not enough seats available. Only %d seats left.", r.Limit)
	case PerGuestLimitExceeded:
		if r.Limit == 1 {
			return "You can reserve at most 1 seat."
		}
		return fmt.Sprintf("You can reserve at most %d seats.", r.Limit)
	case MissingRequiredField:
		return "This field is required."
	}
	return string(r.Code)
}

// Rejections is returned as an error when a reservation is refused.
type Rejections []Rejection

func (rs Rejections) Error() string {
	msgs := make([]string, 0, len(rs))
	for _, r := range rs {
		msgs = append(msgs, r.Field+": "+r.Message())
	}
	return "reservation rejected: " + strings.Join(msgs, "; ")
}

// Has reports whether a rejection with the given code and field is present.
func (rs Rejections) Has(code RejectionCode, field string) bool {
	for _, r := range rs {
		if r.Code == code && r.Field == field {
			return true
		}
	}
	return false
}
