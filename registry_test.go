package numbercard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xevion/go-ha-number-card/types"
)

func TestRegisterCards(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterCards(r))

	assert.Equal(t, []CardInfo{{
		Type:        CardType,
		Name:        "Mushroom Number Card",
		Description: "Card for number and input number entity",
		Preview:     true,
	}}, r.Cards())

	_, ok := r.Get(CustomPrefix + CardType)
	assert.True(t, ok)

	assert.ErrorIs(t, RegisterCards(r), ErrDuplicateCard)

	UnregisterCards(r)
	assert.Empty(t, r.Cards())
	assert.False(t, r.Unregister(CardType))
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterCards(r))

	c, err := r.Create("custom:mushroom-number-card", WithID("kitchen"))
	require.NoError(t, err)
	assert.Equal(t, "kitchen", c.ID())

	_, err = r.Create("tile")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestRegistryStripsPrefix(t *testing.T) {
	r := NewRegistry()
	def := NumberCard()
	def.Type = CustomPrefix + "other-card"
	require.NoError(t, r.Register(def))

	_, ok := r.Get("other-card")
	assert.True(t, ok)
	assert.True(t, r.Unregister("custom:other-card"))
}

func TestStubConfig(t *testing.T) {
	hass := snapshot(
		types.Entity{EntityID: "sensor.temp", State: "20"},
		types.Entity{EntityID: "number.zeta", State: "1"},
		types.Entity{EntityID: "input_number.alpha", State: "2"},
	)
	cfg := NumberCard().StubConfig(hass)
	assert.Equal(t, "custom:mushroom-number-card", cfg.Type)
	assert.Equal(t, "input_number.alpha", cfg.Entity)

	assert.Empty(t, StubConfig(snapshot(types.Entity{EntityID: "light.desk"})).Entity)
	assert.Empty(t, StubConfig(nil).Entity)
}
