package interactions

import "github.com/bwmarrin/discordgo"

// Identifier option types. They parse the raw snowflake without a resolved lookup.
type (
	UserID        string
	ChannelID     string
	RoleID        string
	MentionableID string
	AttachmentID  string
)

// ResolvedUser is a user option with its guild member, when the interaction came from a guild.
type ResolvedUser struct {
	User   *discordgo.User
	Member *discordgo.Member
}

// ResolvedMentionable is a mentionable option resolved to either a user or a role.
type ResolvedMentionable struct {
	User *ResolvedUser
	Role *discordgo.Role
}

// ID returns the snowflake of the mentioned user or role.
func (m ResolvedMentionable) ID() string {
	switch {
	case m.User != nil && m.User.User != nil:
		return m.User.User.ID
	case m.Role != nil:
		return m.Role.ID
	}
	return ""
}

func resolveUser(resolved *discordgo.ApplicationCommandInteractionDataResolved, id string) (*ResolvedUser, bool) {
	if resolved == nil {
		return nil, false
	}
	user, ok := resolved.Users[id]
	if !ok || user == nil {
		return nil, false
	}
	r := &ResolvedUser{User: user}
	if member, ok := resolved.Members[id]; ok {
		r.Member = member
	}
	return r, true
}

func resolveRole(resolved *discordgo.ApplicationCommandInteractionDataResolved, id string) (*discordgo.Role, bool) {
	if resolved == nil {
		return nil, false
	}
	role, ok := resolved.Roles[id]
	return role, ok && role != nil
}

func resolveChannel(resolved *discordgo.ApplicationCommandInteractionDataResolved, id string) (*discordgo.Channel, bool) {
	if resolved == nil {
		return nil, false
	}
	channel, ok := resolved.Channels[id]
	return channel, ok && channel != nil
}

func resolveAttachment(resolved *discordgo.ApplicationCommandInteractionDataResolved, id string) (*discordgo.MessageAttachment, bool) {
	if resolved == nil {
		return nil, false
	}
	attachment, ok := resolved.Attachments[id]
	return attachment, ok && attachment != nil
}
