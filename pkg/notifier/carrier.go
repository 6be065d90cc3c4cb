package notifier

import (
	"strings"

	"github.com/prasetya/trackping/internal/domain/entity"
)

// gateways is the static carrier -> email-to-SMS gateway domain directory,
// loaded once at process start.
var gateways = map[entity.Carrier]string{
	entity.CarrierVerizon:  "vtext.com",
	entity.CarrierATT:      "txt.att.net",
	entity.CarrierTMobile:  "tmomail.net",
	entity.CarrierSprint:   "messaging.sprintpcs.com",
	entity.CarrierMetroPCS: "mymetropcs.com",
}

// replyCodes maps the single-digit webhook replies to carriers.
var replyCodes = map[string]entity.Carrier{
	"1": entity.CarrierVerizon,
	"2": entity.CarrierATT,
	"3": entity.CarrierTMobile,
	"4": entity.CarrierSprint,
	"5": entity.CarrierMetroPCS,
}

// CarrierForReply interprets an inbound message body as a carrier
// selection. Anything outside "1".."5" is not a selection.
func CarrierForReply(body string) (entity.Carrier, bool) {
	c, ok := replyCodes[strings.TrimSpace(body)]
	return c, ok
}

// GatewayDomain returns the gateway domain for a carrier.
func GatewayDomain(c entity.Carrier) (string, bool) {
	domain, ok := gateways[c]
	return domain, ok
}

// GatewayAddress builds the relay address <digits>@<gateway-domain>. It
// reports false for an unknown carrier or a phone with no digits.
func GatewayAddress(phone string, c entity.Carrier) (string, bool) {
	domain, ok := gateways[c]
	if !ok {
		return "", false
	}
	digits := digitsOnly(phone)
	if digits == "" {
		return "", false
	}
	return digits + "@" + domain, true
}

// ReplyMenu is the carrier-selection prompt sent after a fresh signup.
func ReplyMenu() string {
	return "Welcome to IP tracking! Reply with the number of your carrier:\n" +
		"1. Verizon\n2. AT&T\n3. T-Mobile\n4. Sprint\n5. MetroPCS"
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
