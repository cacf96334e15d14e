package generator

import (
	"fmt"
	"io"
)

// HelpSyntax writes the directive reference to w.
func HelpSyntax(w io.Writer) error {
	_, err := fmt.Fprint(w, `
interactgen Syntax Guide

interactgen reads '//interactions:' directives from Go comments and writes
interactions_gen.go next to them. Arguments are key=value pairs separated by
commas. Values are string, integer or floating point literals, true/false, or
function references (name or pkg.Name).

Commands:

  // Ping checks the bot is alive.
  //interactions:command name="ping", dm_permission=false
  type Ping struct {
      // Text to echo back.
      Text string
      //interactions:option rename="count", min_value=1, max_value=10
      Times *int64
  }

  The first line of the documentation is the description unless 'desc' or
  'desc_localizations' is given. Plain fields are required options, *T fields
  are optional and must come after all required ones.

  command:  name, name_localizations, desc, desc_localizations,
            default_permissions, dm_permission, nsfw, contexts,
            integration_types, autocomplete, partial
  option:   rename, name_localizations, desc, desc_localizations,
            autocomplete, channel_types, max_value, min_value,
            max_length, min_length

  Option types: string, int64, float64, bool, interactions.ResolvedUser,
  interactions.ResolvedMentionable, interactions.ResolvedChannel,
  interactions.Attachment, interactions.UserID, interactions.ChannelID,
  interactions.RoleID, interactions.MentionableID, interactions.AttachmentID,
  *discordgo.Role and choice types.

  autocomplete=true models parse autocomplete interactions: fields are
  optional or interactions.AutocompleteValue[T]. partial=true models parse
  the options they declare and ignore the others. Neither gets a schema.

Groups:

  //interactions:group name="tools", desc="Tool commands"
  type Tools struct {
      //interactions:subcommand name="ping"
      Ping *Ping
  }

Choices:

  //interactions:choice
  type Unit int64

  const (
      //interactions:choice name="Minute"
      Minute Unit = 60
  )

  The underlying type selects a string, integer or number option. Constants
  without a directive are not offered.

Modals:

  //interactions:modal title="Feedback", custom_id="feedback"
  type Feedback struct {
      //interactions:input label="Subject", style="short", max_length=100
      Subject string
      //interactions:input label="Details", style="paragraph"
      Details *string
  }

  modal:    title, custom_id
  input:    label, custom_id, style, value, placeholder, min_length, max_length

Lists:

  channel_types, contexts and integration_types take space separated names,
  for example channel_types="guild_text guild_voice".
`)
	return err
}
