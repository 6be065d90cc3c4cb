package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prasetya/trackping/internal/domain/entity"
)

func TestCarrierForReply(t *testing.T) {
	cases := map[string]entity.Carrier{
		"1": entity.CarrierVerizon,
		"2": entity.CarrierATT,
		"3": entity.CarrierTMobile,
		"4": entity.CarrierSprint,
		"5": entity.CarrierMetroPCS,
	}
	for body, want := range cases {
		got, ok := CarrierForReply(body)
		assert.True(t, ok, "body %q", body)
		assert.Equal(t, want, got)
	}

	// whitespace around the digit is fine
	got, ok := CarrierForReply(" 2 ")
	assert.True(t, ok)
	assert.Equal(t, entity.CarrierATT, got)

	for _, body := range []string{"9", "0", "6", "hello", "", "12"} {
		_, ok := CarrierForReply(body)
		assert.False(t, ok, "body %q must not select a carrier", body)
	}
}

func TestGatewayAddress(t *testing.T) {
	to, ok := GatewayAddress("+1 (555) 111-1111", entity.CarrierVerizon)
	assert.True(t, ok)
	assert.Equal(t, "15551111111@vtext.com", to)

	to, ok = GatewayAddress("+15551111111", entity.CarrierATT)
	assert.True(t, ok)
	assert.Equal(t, "15551111111@txt.att.net", to)
}

func TestGatewayAddressUnknownCarrier(t *testing.T) {
	_, ok := GatewayAddress("+15551111111", entity.Carrier("9"))
	assert.False(t, ok)

	_, ok = GatewayAddress("+15551111111", entity.CarrierNone)
	assert.False(t, ok)
}

func TestGatewayAddressNoDigits(t *testing.T) {
	_, ok := GatewayAddress("not-a-number", entity.CarrierVerizon)
	assert.False(t, ok)
}

func TestGatewayDomainCoversAllKnownCarriers(t *testing.T) {
	for _, c := range []entity.Carrier{
		entity.CarrierVerizon,
		entity.CarrierATT,
		entity.CarrierTMobile,
		entity.CarrierSprint,
		entity.CarrierMetroPCS,
	} {
		domain, ok := GatewayDomain(c)
		assert.True(t, ok, "carrier %s", c)
		assert.NotEmpty(t, domain)
	}
}
