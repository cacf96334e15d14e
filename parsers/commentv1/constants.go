package commentv1

const (
	// DirectivePrefix starts every directive line.
	DirectivePrefix = "//interactions:"

	// Directive kinds
	DirectiveCommand    = "command"
	DirectiveGroup      = "group"
	DirectiveOption     = "option"
	DirectiveSubcommand = "subcommand"
	DirectiveChoice     = "choice"
	DirectiveModal      = "modal"
	DirectiveInput      = "input"

	// GeneratedFileName is skipped while parsing.
	GeneratedFileName = "interactions_gen.go"
)

// Argument names accepted by each directive, in canonical order.
var (
	CommandKeys = []string{
		"name", "name_localizations", "desc", "desc_localizations",
		"default_permissions", "dm_permission", "nsfw",
		"contexts", "integration_types", "autocomplete", "partial",
	}
	GroupKeys = []string{
		"name", "name_localizations", "desc", "desc_localizations",
		"default_permissions", "dm_permission", "nsfw",
		"contexts", "integration_types",
	}
	OptionKeys = []string{
		"rename", "name_localizations", "desc", "desc_localizations", "autocomplete",
		"channel_types", "max_value", "min_value", "max_length", "min_length",
	}
	SubcommandKeys  = []string{"name"}
	ChoiceTypeKeys  = []string{}
	ChoiceValueKeys = []string{"name", "name_localizations"}
	ModalKeys       = []string{"title", "custom_id"}
	InputKeys       = []string{"label", "custom_id", "style", "value", "placeholder", "min_length", "max_length"}
)

// KeysFor returns the accepted argument names of a directive. Choice
// directives on a type and on its constants are told apart by onType.
func KeysFor(kind string, onType bool) []string {
	switch kind {
	case DirectiveCommand:
		return CommandKeys
	case DirectiveGroup:
		return GroupKeys
	case DirectiveOption:
		return OptionKeys
	case DirectiveSubcommand:
		return SubcommandKeys
	case DirectiveChoice:
		if onType {
			return ChoiceTypeKeys
		}
		return ChoiceValueKeys
	case DirectiveModal:
		return ModalKeys
	case DirectiveInput:
		return InputKeys
	}
	return nil
}

// channelTypes maps channel_types names to discordgo constants.
var channelTypes = map[string]string{
	"guild_text":           "discordgo.ChannelTypeGuildText",
	"dm":                   "discordgo.ChannelTypeDM",
	"private":              "discordgo.ChannelTypeDM",
	"guild_voice":          "discordgo.ChannelTypeGuildVoice",
	"group_dm":             "discordgo.ChannelTypeGroupDM",
	"group":                "discordgo.ChannelTypeGroupDM",
	"guild_category":       "discordgo.ChannelTypeGuildCategory",
	"guild_announcement":   "discordgo.ChannelTypeGuildNews",
	"guild_news":           "discordgo.ChannelTypeGuildNews",
	"announcement_thread":  "discordgo.ChannelTypeGuildNewsThread",
	"guild_news_thread":    "discordgo.ChannelTypeGuildNewsThread",
	"public_thread":        "discordgo.ChannelTypeGuildPublicThread",
	"guild_public_thread":  "discordgo.ChannelTypeGuildPublicThread",
	"private_thread":       "discordgo.ChannelTypeGuildPrivateThread",
	"guild_private_thread": "discordgo.ChannelTypeGuildPrivateThread",
	"guild_stage_voice":    "discordgo.ChannelTypeGuildStageVoice",
	"guild_directory":      "discordgo.ChannelTypeGuildDirectory",
	"guild_forum":          "discordgo.ChannelTypeGuildForum",
}

var interactionContexts = map[string]string{
	"guild":           "discordgo.InteractionContextGuild",
	"bot_dm":          "discordgo.InteractionContextBotDM",
	"private_channel": "discordgo.InteractionContextPrivateChannel",
}

var integrationTypes = map[string]string{
	"guild_install": "discordgo.ApplicationIntegrationGuildInstall",
	"user_install":  "discordgo.ApplicationIntegrationUserInstall",
}

var textInputStyles = []string{"short", "paragraph"}
