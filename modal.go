package interactions

import (
	"github.com/bwmarrin/discordgo"
)

// MaxModalFields is the number of text inputs Discord accepts in one modal.
const MaxModalFields = 5

// ModalInputComponent is one submitted text input.
type ModalInputComponent struct {
	CustomID string
	Value    string
}

// ModalInputData is the flattened list of text inputs submitted with a modal.
type ModalInputData struct {
	CustomID   string
	Components []ModalInputComponent
}

// NewModalInputData flattens the action rows of a modal submission.
func NewModalInputData(data discordgo.ModalSubmitInteractionData) *ModalInputData {
	d := &ModalInputData{CustomID: data.CustomID}
	for _, c := range data.Components {
		d.add(c)
	}
	return d
}

func (d *ModalInputData) add(c discordgo.MessageComponent) {
	switch c := c.(type) {
	case *discordgo.ActionsRow:
		for _, inner := range c.Components {
			d.add(inner)
		}
	case discordgo.ActionsRow:
		for _, inner := range c.Components {
			d.add(inner)
		}
	case *discordgo.TextInput:
		d.Components = append(d.Components, ModalInputComponent{CustomID: c.CustomID, Value: c.Value})
	case discordgo.TextInput:
		d.Components = append(d.Components, ModalInputComponent{CustomID: c.CustomID, Value: c.Value})
	}
}

// Component returns the submitted value of the text input customID. Empty
// values are reported as not received.
func (d *ModalInputData) Component(customID string) (string, bool) {
	for _, c := range d.Components {
		if c.CustomID == customID {
			return c.Value, c.Value != ""
		}
	}
	return "", false
}

// ModalModel is implemented by types parsed from a modal submission.
type ModalModel interface {
	FromModal(data *ModalInputData) error
}

// CreateModal is implemented by types that build a modal.
type CreateModal interface {
	CreateModal(customID string) *ModalData
}

// ParseModal parses data into a new T.
func ParseModal[T any, PT interface {
	*T
	ModalModel
}](data *ModalInputData) (*T, error) {
	v := new(T)
	if err := PT(v).FromModal(data); err != nil {
		return nil, err
	}
	return v, nil
}

// ModalData is a modal built by CreateModal.
type ModalData struct {
	CustomID   string
	Title      string
	Components []*discordgo.TextInput
}

// InteractionResponse returns the response showing the modal, with each text
// input in its own action row.
func (m *ModalData) InteractionResponse() *discordgo.InteractionResponse {
	rows := make([]discordgo.MessageComponent, 0, len(m.Components))
	for _, c := range m.Components {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{c}})
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   m.CustomID,
			Title:      m.Title,
			Components: rows,
		},
	}
}
