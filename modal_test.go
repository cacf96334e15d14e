package interactions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModalInputData(t *testing.T) {
	data := NewModalInputData(discordgo.ModalSubmitInteractionData{
		CustomID: "feedback",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{&discordgo.TextInput{CustomID: "a", Value: "1"}}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{discordgo.TextInput{CustomID: "b", Value: ""}}},
			&discordgo.Button{CustomID: "ignored"},
		},
	})
	assert.Equal(t, "feedback", data.CustomID)
	assert.Equal(t, []ModalInputComponent{{CustomID: "a", Value: "1"}, {CustomID: "b"}}, data.Components)

	v, ok := data.Component("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok = data.Component("b")
	assert.False(t, ok)
	_, ok = data.Component("c")
	assert.False(t, ok)
}

func TestModalInteractionResponse(t *testing.T) {
	m := &ModalData{
		CustomID: "feedback",
		Title:    "Feedback",
		Components: []*discordgo.TextInput{
			{CustomID: "a", Label: "A", Style: discordgo.TextInputShort},
			{CustomID: "b", Label: "B", Style: discordgo.TextInputParagraph},
		},
	}
	resp := m.InteractionResponse()
	assert.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Feedback", resp.Data.Title)
	require.Len(t, resp.Data.Components, 2)
	row, ok := resp.Data.Components[1].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)
	assert.Equal(t, "b", row.Components[0].(*discordgo.TextInput).CustomID)
}
