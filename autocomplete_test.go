package interactions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocompleteValue(t *testing.T) {
	var a AutocompleteValue[int64]
	assert.Equal(t, AutocompleteNone, a.State)
	assert.Equal(t, "none", a.State.String())

	focused := opt(discordgo.ApplicationCommandOptionInteger, "4")
	focused.Focused = true
	require.NoError(t, a.FromOption(focused, CommandOptionData{}, nil))
	input, ok := a.Focused()
	assert.True(t, ok)
	assert.Equal(t, "4", input)
	_, ok = a.Completed()
	assert.False(t, ok)

	require.NoError(t, a.FromOption(opt(discordgo.ApplicationCommandOptionInteger, float64(4)), CommandOptionData{}, nil))
	v, ok := a.Completed()
	assert.True(t, ok)
	assert.Equal(t, int64(4), v)
	assert.Equal(t, "completed", a.State.String())

	err := a.FromOption(opt(discordgo.ApplicationCommandOptionInteger, float64(40)), CommandOptionData{MaxValue: IntegerValue(10)}, nil)
	assert.ErrorIs(t, err, ErrIntegerOutOfRange)
}

func TestFloatEqual(t *testing.T) {
	assert.True(t, FloatEqual(0.1+0.2, 0.3))
	assert.False(t, FloatEqual(0.3, 0.31))
	assert.ErrorIs(t, InvalidChoice(7200), ErrInvalidChoice)
	assert.EqualError(t, InvalidChoice(7200), "invalid choice value: 7200")
}
