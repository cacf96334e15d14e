package interactions

import (
	"encoding/json"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opt(kind discordgo.ApplicationCommandOptionType, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: "x", Type: kind, Value: value}
}

func TestParseOptionScalars(t *testing.T) {
	var s string
	require.NoError(t, ParseOption(&s, opt(discordgo.ApplicationCommandOptionString, "héllo"), CommandOptionData{MaxLength: Ptr(5)}, nil))
	assert.Equal(t, "héllo", s)

	var i int64
	require.NoError(t, ParseOption(&i, opt(discordgo.ApplicationCommandOptionInteger, float64(42)), CommandOptionData{}, nil))
	assert.Equal(t, int64(42), i)
	require.NoError(t, ParseOption(&i, opt(discordgo.ApplicationCommandOptionInteger, json.Number("-7")), CommandOptionData{}, nil))
	assert.Equal(t, int64(-7), i)

	var n int
	require.NoError(t, ParseOption(&n, opt(discordgo.ApplicationCommandOptionInteger, int64(3)), CommandOptionData{}, nil))
	assert.Equal(t, 3, n)

	var f float64
	require.NoError(t, ParseOption(&f, opt(discordgo.ApplicationCommandOptionNumber, 1.5), CommandOptionData{}, nil))
	assert.Equal(t, 1.5, f)

	var b bool
	require.NoError(t, ParseOption(&b, opt(discordgo.ApplicationCommandOptionBoolean, true), CommandOptionData{}, nil))
	assert.True(t, b)
}

func TestParseOptionConstraints(t *testing.T) {
	tests := []struct {
		name string
		dst  any
		opt  *discordgo.ApplicationCommandInteractionDataOption
		data CommandOptionData
		err  error
	}{
		{"integer below", new(int64), opt(discordgo.ApplicationCommandOptionInteger, float64(0)), CommandOptionData{MinValue: IntegerValue(1)}, ErrIntegerOutOfRange},
		{"integer above", new(int64), opt(discordgo.ApplicationCommandOptionInteger, float64(11)), CommandOptionData{MaxValue: IntegerValue(10)}, ErrIntegerOutOfRange},
		{"integer not whole", new(int64), opt(discordgo.ApplicationCommandOptionInteger, 1.5), CommandOptionData{}, ErrInvalidType},
		{"number below", new(float64), opt(discordgo.ApplicationCommandOptionNumber, -0.5), CommandOptionData{MinValue: NumberValue(0)}, ErrNumberOutOfRange},
		{"number above integer bound", new(float64), opt(discordgo.ApplicationCommandOptionNumber, 2.5), CommandOptionData{MaxValue: IntegerValue(2)}, ErrNumberOutOfRange},
		{"string too short", new(string), opt(discordgo.ApplicationCommandOptionString, "ab"), CommandOptionData{MinLength: Ptr(3)}, ErrStringLengthOutOfRange},
		{"string too long", new(string), opt(discordgo.ApplicationCommandOptionString, "日本語"), CommandOptionData{MaxLength: Ptr(2)}, ErrStringLengthOutOfRange},
		{"kind mismatch", new(string), opt(discordgo.ApplicationCommandOptionInteger, float64(1)), CommandOptionData{}, ErrInvalidType},
		{"value mismatch", new(bool), opt(discordgo.ApplicationCommandOptionBoolean, "true"), CommandOptionData{}, ErrInvalidType},
		{"unsupported", new(uint8), opt(discordgo.ApplicationCommandOptionInteger, float64(1)), CommandOptionData{}, ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ParseOption(tt.dst, tt.opt, tt.data, nil), tt.err)
		})
	}
}

func TestParseOptionResolved(t *testing.T) {
	resolved := &discordgo.ApplicationCommandInteractionDataResolved{
		Users:       map[string]*discordgo.User{"1": {ID: "1", Username: "ann"}},
		Roles:       map[string]*discordgo.Role{"2": {ID: "2", Name: "mods"}},
		Channels:    map[string]*discordgo.Channel{"3": {ID: "3", Type: discordgo.ChannelTypeGuildText}},
		Attachments: map[string]*discordgo.MessageAttachment{"4": {ID: "4", Filename: "a.png"}},
	}

	var user discordgo.User
	require.NoError(t, ParseOption(&user, opt(discordgo.ApplicationCommandOptionUser, "1"), CommandOptionData{}, resolved))
	assert.Equal(t, "ann", user.Username)

	var ru ResolvedUser
	require.NoError(t, ParseOption(&ru, opt(discordgo.ApplicationCommandOptionUser, "1"), CommandOptionData{}, resolved))
	assert.Nil(t, ru.Member)

	var mention ResolvedMentionable
	require.NoError(t, ParseOption(&mention, opt(discordgo.ApplicationCommandOptionMentionable, "2"), CommandOptionData{}, resolved))
	assert.Equal(t, "mods", mention.Role.Name)
	assert.Equal(t, "2", mention.ID())
	require.NoError(t, ParseOption(&mention, opt(discordgo.ApplicationCommandOptionMentionable, "1"), CommandOptionData{}, resolved))
	assert.Equal(t, "1", mention.ID())

	var role discordgo.Role
	require.NoError(t, ParseOption(&role, opt(discordgo.ApplicationCommandOptionRole, "2"), CommandOptionData{}, resolved))
	assert.Equal(t, "mods", role.Name)

	var channel discordgo.Channel
	require.NoError(t, ParseOption(&channel, opt(discordgo.ApplicationCommandOptionChannel, "3"), CommandOptionData{ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText}}, resolved))
	assert.Equal(t, "3", channel.ID)
	err := ParseOption(&channel, opt(discordgo.ApplicationCommandOptionChannel, "3"), CommandOptionData{ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice}}, resolved)
	assert.ErrorIs(t, err, ErrInvalidChannelType)

	var attachment discordgo.MessageAttachment
	require.NoError(t, ParseOption(&attachment, opt(discordgo.ApplicationCommandOptionAttachment, "4"), CommandOptionData{}, resolved))
	assert.Equal(t, "a.png", attachment.Filename)

	assert.ErrorIs(t, ParseOption(&role, opt(discordgo.ApplicationCommandOptionRole, "9"), CommandOptionData{}, resolved), ErrLookupFailed)
	assert.ErrorIs(t, ParseOption(&role, opt(discordgo.ApplicationCommandOptionRole, "2"), CommandOptionData{}, nil), ErrLookupFailed)

	var id ChannelID
	require.NoError(t, ParseOption(&id, opt(discordgo.ApplicationCommandOptionChannel, "77"), CommandOptionData{}, nil))
	assert.Equal(t, ChannelID("77"), id)
	var uid UserID
	assert.ErrorIs(t, ParseOption(&uid, opt(discordgo.ApplicationCommandOptionUser, ""), CommandOptionData{}, nil), ErrInvalidType)
}

func TestOptionFor(t *testing.T) {
	data := CreateOptionData{
		Name:        "count",
		Description: "How many",
		Required:    true,
		Data:        CommandOptionData{MinValue: IntegerValue(1), MaxValue: NumberValue(9.5), MaxLength: Ptr(4)},
	}
	option, err := OptionFor[int64](data)
	require.NoError(t, err)
	assert.Equal(t, discordgo.ApplicationCommandOptionInteger, option.Type)
	assert.True(t, option.Required)
	require.NotNil(t, option.MinValue)
	assert.Equal(t, 1.0, *option.MinValue)
	assert.Equal(t, 9.5, option.MaxValue)
	assert.Zero(t, option.MaxLength)

	kinds := map[discordgo.ApplicationCommandOptionType]func(CreateOptionData) (*discordgo.ApplicationCommandOption, error){
		discordgo.ApplicationCommandOptionString:      OptionFor[string],
		discordgo.ApplicationCommandOptionNumber:      OptionFor[float64],
		discordgo.ApplicationCommandOptionBoolean:     OptionFor[bool],
		discordgo.ApplicationCommandOptionUser:        OptionFor[ResolvedUser],
		discordgo.ApplicationCommandOptionChannel:     OptionFor[ChannelID],
		discordgo.ApplicationCommandOptionRole:        OptionFor[discordgo.Role],
		discordgo.ApplicationCommandOptionMentionable: OptionFor[ResolvedMentionable],
		discordgo.ApplicationCommandOptionAttachment:  OptionFor[AttachmentID],
	}
	for kind, build := range kinds {
		option, err := build(CreateOptionData{Name: "x", Description: "x"})
		require.NoError(t, err)
		assert.Equal(t, kind, option.Type)
	}

	_, err = OptionFor[uint8](CreateOptionData{Name: "bad"})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "bad", schemaErr.Item)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestBuildKeepsApplicableConstraints(t *testing.T) {
	data := CreateOptionData{
		Name:              "channel",
		NameLocalizations: NewNameLocalizations("fr", "salon"),
		Description:       "Where",
		Data:              CommandOptionData{ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText}, MinLength: Ptr(1)},
	}
	option := data.Build(discordgo.ApplicationCommandOptionChannel)
	assert.Equal(t, []discordgo.ChannelType{discordgo.ChannelTypeGuildText}, option.ChannelTypes)
	assert.Nil(t, option.MinLength)
	assert.Equal(t, "salon", option.NameLocalizations[discordgo.French])

	option = data.Build(discordgo.ApplicationCommandOptionString)
	assert.Empty(t, option.ChannelTypes)
	require.NotNil(t, option.MinLength)
	assert.Equal(t, 1, *option.MinLength)
}

func TestOptionValueString(t *testing.T) {
	assert.Equal(t, "10", IntegerValue(10).String())
	assert.Equal(t, "0.25", NumberValue(0.25).String())
	assert.Equal(t, 10.0, IntegerValue(10).Number())
}
