// Package interactions is the runtime support for code generated by interactgen.
//
// Annotated command, choice and modal types get FromInteraction/CreateCommand,
// FromOption/CreateOption and FromModal/CreateModal methods which target the
// types in this package and github.com/bwmarrin/discordgo.
package interactions

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// CommandInputData is the option list of a command interaction along with
// the entities Discord resolved for it.
type CommandInputData struct {
	Options  []*discordgo.ApplicationCommandInteractionDataOption
	Resolved *discordgo.ApplicationCommandInteractionDataResolved
}

// NewCommandInputData returns the input of a received application command.
func NewCommandInputData(data discordgo.ApplicationCommandInteractionData) *CommandInputData {
	return &CommandInputData{
		Options:  data.Options,
		Resolved: data.Resolved,
	}
}

// SubCommandInput returns the nested input of a subcommand or subcommand group option.
func SubCommandInput(opt *discordgo.ApplicationCommandInteractionDataOption, resolved *discordgo.ApplicationCommandInteractionDataResolved) (*CommandInputData, error) {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
		return &CommandInputData{Options: opt.Options, Resolved: resolved}, nil
	}
	return nil, invalidType(opt)
}

// Focused returns the name of the focused option of an autocomplete interaction.
func (d *CommandInputData) Focused() (string, bool) {
	for _, opt := range d.Options {
		if opt.Focused {
			return opt.Name, true
		}
		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			nested := CommandInputData{Options: opt.Options}
			if name, ok := nested.Focused(); ok {
				return name, true
			}
		}
	}
	return "", false
}

// ParseField parses the option called name into a T. The boolean is false when
// the option was not received.
func ParseField[T any](d *CommandInputData, name string) (T, bool, error) {
	var v T
	for _, opt := range d.Options {
		if opt.Name != name {
			continue
		}
		if err := ParseOption(&v, opt, CommandOptionData{}, d.Resolved); err != nil {
			return v, false, optionError(name, err)
		}
		return v, true, nil
	}
	return v, false, nil
}

// CommandModel is implemented by types parsed from command input.
type CommandModel interface {
	FromInteraction(data *CommandInputData) error
}

// CreateCommand is implemented by types that build an application command schema.
type CreateCommand interface {
	CreateCommand() (*ApplicationCommandData, error)
}

// ParseCommand parses data into a new T.
func ParseCommand[T any, PT interface {
	*T
	CommandModel
}](data *CommandInputData) (*T, error) {
	v := new(T)
	if err := PT(v).FromInteraction(data); err != nil {
		return nil, err
	}
	return v, nil
}

// BuildCommand builds the schema of T.
func BuildCommand[T CreateCommand]() (*ApplicationCommandData, error) {
	var zero T
	return zero.CreateCommand()
}

// ApplicationCommandData is a command schema built by CreateCommand.
type ApplicationCommandData struct {
	Name                     string
	NameLocalizations        NameLocalizations
	Description              string
	DescriptionLocalizations map[discordgo.Locale]string
	Options                  []*discordgo.ApplicationCommandOption
	DefaultMemberPermissions *int64
	DMPermission             *bool
	NSFW                     *bool
	Contexts                 []discordgo.InteractionContextType
	IntegrationTypes         []discordgo.ApplicationIntegrationType
	// Group is set when Options are subcommands or subcommand groups.
	Group bool
}

// ApplicationCommand converts d to a chat input command ready for registration.
func (d *ApplicationCommandData) ApplicationCommand() *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Type:                     discordgo.ChatApplicationCommand,
		Name:                     d.Name,
		Description:              d.Description,
		Options:                  d.Options,
		DefaultMemberPermissions: d.DefaultMemberPermissions,
		DMPermission:             d.DMPermission,
		NSFW:                     d.NSFW,
	}
	if len(d.NameLocalizations) > 0 {
		names := map[discordgo.Locale]string(d.NameLocalizations)
		cmd.NameLocalizations = &names
	}
	if len(d.DescriptionLocalizations) > 0 {
		descriptions := d.DescriptionLocalizations
		cmd.DescriptionLocalizations = &descriptions
	}
	if len(d.Contexts) > 0 {
		contexts := d.Contexts
		cmd.Contexts = &contexts
	}
	if len(d.IntegrationTypes) > 0 {
		integrationTypes := d.IntegrationTypes
		cmd.IntegrationTypes = &integrationTypes
	}
	return cmd
}

// Option converts d to a subcommand option, or a subcommand group option when d is a group.
func (d *ApplicationCommandData) Option() *discordgo.ApplicationCommandOption {
	kind := discordgo.ApplicationCommandOptionSubCommand
	if d.Group {
		kind = discordgo.ApplicationCommandOptionSubCommandGroup
	}
	opt := &discordgo.ApplicationCommandOption{
		Type:                     kind,
		Name:                     d.Name,
		Description:              d.Description,
		DescriptionLocalizations: d.DescriptionLocalizations,
		Options:                  d.Options,
	}
	if len(d.NameLocalizations) > 0 {
		opt.NameLocalizations = d.NameLocalizations
	}
	return opt
}

// ApplicationCommands builds the schemas of cmds for bulk registration.
func ApplicationCommands(cmds ...CreateCommand) ([]*discordgo.ApplicationCommand, error) {
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		data, err := c.CreateCommand()
		if err != nil {
			return nil, fmt.Errorf("building %T: %w", c, err)
		}
		out = append(out, data.ApplicationCommand())
	}
	return out, nil
}
