package entity

import (
	"time"
)

// Carrier identifies a US mobile carrier with an email-to-SMS gateway.
// The zero value means the registrant has not picked one yet.
type Carrier string

const (
	CarrierNone     Carrier = ""
	CarrierVerizon  Carrier = "verizon"
	CarrierATT      Carrier = "att"
	CarrierTMobile  Carrier = "tmobile"
	CarrierSprint   Carrier = "sprint"
	CarrierMetroPCS Carrier = "metropcs"
)

// Known reports whether c is one of the supported carriers.
func (c Carrier) Known() bool {
	switch c {
	case CarrierVerizon, CarrierATT, CarrierTMobile, CarrierSprint, CarrierMetroPCS:
		return true
	}
	return false
}

// Display returns the human-readable carrier name.
func (c Carrier) Display() string {
	switch c {
	case CarrierVerizon:
		return "Verizon"
	case CarrierATT:
		return "AT&T"
	case CarrierTMobile:
		return "T-Mobile"
	case CarrierSprint:
		return "Sprint"
	case CarrierMetroPCS:
		return "MetroPCS"
	}
	return string(c)
}

// User is one registrant. TrackingID is the public link path segment and
// the registry key; Phone is stored exactly as received from the webhook.
type User struct {
	TrackingID string
	Phone      string
	Carrier    Carrier
	CreatedAt  time.Time
}
