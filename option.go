package interactions

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// OptionValue is a min_value or max_value bound, either an integer or a number.
type OptionValue struct {
	Integer bool
	Int     int64
	Float   float64
}

// IntegerValue returns an integer bound.
func IntegerValue(v int64) *OptionValue {
	return &OptionValue{Integer: true, Int: v}
}

// NumberValue returns a floating point bound.
func NumberValue(v float64) *OptionValue {
	return &OptionValue{Float: v}
}

// Number returns the bound as a float64.
func (v OptionValue) Number() float64 {
	if v.Integer {
		return float64(v.Int)
	}
	return v.Float
}

func (v OptionValue) String() string {
	if v.Integer {
		return strconv.FormatInt(v.Int, 10)
	}
	return strconv.FormatFloat(v.Float, 'g', -1, 64)
}

// CommandOptionData holds the constraints declared on an option. They are
// enforced while parsing and copied into the schema.
type CommandOptionData struct {
	ChannelTypes []discordgo.ChannelType
	MaxValue     *OptionValue
	MinValue     *OptionValue
	MaxLength    *int
	MinLength    *int
}

// CreateOptionData is the metadata used to build an option schema.
type CreateOptionData struct {
	Name                     string
	NameLocalizations        NameLocalizations
	Description              string
	DescriptionLocalizations map[discordgo.Locale]string
	Required                 bool
	Autocomplete             bool
	Data                     CommandOptionData
}

// Build returns an option of the given kind. Constraints that do not apply
// to kind are left out.
func (d CreateOptionData) Build(kind discordgo.ApplicationCommandOptionType) *discordgo.ApplicationCommandOption {
	opt := &discordgo.ApplicationCommandOption{
		Type:                     kind,
		Name:                     d.Name,
		Description:              d.Description,
		DescriptionLocalizations: d.DescriptionLocalizations,
		Required:                 d.Required,
		Autocomplete:             d.Autocomplete,
	}
	if len(d.NameLocalizations) > 0 {
		opt.NameLocalizations = d.NameLocalizations
	}
	switch kind {
	case discordgo.ApplicationCommandOptionChannel:
		opt.ChannelTypes = d.Data.ChannelTypes
	case discordgo.ApplicationCommandOptionInteger, discordgo.ApplicationCommandOptionNumber:
		if d.Data.MinValue != nil {
			v := d.Data.MinValue.Number()
			opt.MinValue = &v
		}
		if d.Data.MaxValue != nil {
			opt.MaxValue = d.Data.MaxValue.Number()
		}
	case discordgo.ApplicationCommandOptionString:
		if d.Data.MinLength != nil {
			v := *d.Data.MinLength
			opt.MinLength = &v
		}
		if d.Data.MaxLength != nil {
			opt.MaxLength = *d.Data.MaxLength
		}
	}
	return opt
}

// CommandOption is implemented by types that parse themselves from a single option value.
type CommandOption interface {
	FromOption(opt *discordgo.ApplicationCommandInteractionDataOption, data CommandOptionData, resolved *discordgo.ApplicationCommandInteractionDataResolved) error
}

// CreateOption is implemented by types that build their own option schema.
type CreateOption interface {
	CreateOption(data CreateOptionData) *discordgo.ApplicationCommandOption
}

// ParseOption coerces opt into dst. dst must point to one of the supported
// option types or implement CommandOption.
func ParseOption(dst any, opt *discordgo.ApplicationCommandInteractionDataOption, data CommandOptionData, resolved *discordgo.ApplicationCommandInteractionDataResolved) error {
	switch v := dst.(type) {
	case CommandOption:
		return v.FromOption(opt, data, resolved)
	case *string:
		s, err := stringValue(opt)
		if err != nil {
			return err
		}
		if err := checkLength(s, data); err != nil {
			return err
		}
		*v = s
	case *int64:
		n, err := integerValue(opt, data)
		if err != nil {
			return err
		}
		*v = n
	case *int:
		n, err := integerValue(opt, data)
		if err != nil {
			return err
		}
		*v = int(n)
	case *float64:
		f, err := numberValue(opt, data)
		if err != nil {
			return err
		}
		*v = f
	case *bool:
		if opt.Type != discordgo.ApplicationCommandOptionBoolean {
			return invalidType(opt)
		}
		b, ok := opt.Value.(bool)
		if !ok {
			return invalidType(opt)
		}
		*v = b
	case *discordgo.User:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionUser)
		if err != nil {
			return err
		}
		user, ok := resolveUser(resolved, id)
		if !ok {
			return lookupFailed("user", id)
		}
		*v = *user.User
	case *ResolvedUser:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionUser)
		if err != nil {
			return err
		}
		user, ok := resolveUser(resolved, id)
		if !ok {
			return lookupFailed("user", id)
		}
		*v = *user
	case *ResolvedMentionable:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionMentionable)
		if err != nil {
			return err
		}
		if user, ok := resolveUser(resolved, id); ok {
			*v = ResolvedMentionable{User: user}
			return nil
		}
		if role, ok := resolveRole(resolved, id); ok {
			*v = ResolvedMentionable{Role: role}
			return nil
		}
		return lookupFailed("mentionable", id)
	case *discordgo.Role:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionRole)
		if err != nil {
			return err
		}
		role, ok := resolveRole(resolved, id)
		if !ok {
			return lookupFailed("role", id)
		}
		*v = *role
	case *discordgo.Channel:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionChannel)
		if err != nil {
			return err
		}
		channel, ok := resolveChannel(resolved, id)
		if !ok {
			return lookupFailed("channel", id)
		}
		if len(data.ChannelTypes) > 0 && !slices.Contains(data.ChannelTypes, channel.Type) {
			return fmt.Errorf("%w: %d", ErrInvalidChannelType, channel.Type)
		}
		*v = *channel
	case *discordgo.MessageAttachment:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionAttachment)
		if err != nil {
			return err
		}
		attachment, ok := resolveAttachment(resolved, id)
		if !ok {
			return lookupFailed("attachment", id)
		}
		*v = *attachment
	case *UserID:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionUser)
		if err != nil {
			return err
		}
		*v = UserID(id)
	case *ChannelID:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionChannel)
		if err != nil {
			return err
		}
		*v = ChannelID(id)
	case *RoleID:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionRole)
		if err != nil {
			return err
		}
		*v = RoleID(id)
	case *MentionableID:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionMentionable)
		if err != nil {
			return err
		}
		*v = MentionableID(id)
	case *AttachmentID:
		id, err := idValue(opt, discordgo.ApplicationCommandOptionAttachment)
		if err != nil {
			return err
		}
		*v = AttachmentID(id)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, dst)
	}
	return nil
}

// OptionFor builds the option schema of T. Types implementing CreateOption
// build their own schema.
func OptionFor[T any](data CreateOptionData) (*discordgo.ApplicationCommandOption, error) {
	var zero T
	if c, ok := any(zero).(CreateOption); ok {
		return c.CreateOption(data), nil
	}
	if c, ok := any(&zero).(CreateOption); ok {
		return c.CreateOption(data), nil
	}
	var kind discordgo.ApplicationCommandOptionType
	switch any(zero).(type) {
	case string:
		kind = discordgo.ApplicationCommandOptionString
	case int, int64:
		kind = discordgo.ApplicationCommandOptionInteger
	case float64:
		kind = discordgo.ApplicationCommandOptionNumber
	case bool:
		kind = discordgo.ApplicationCommandOptionBoolean
	case discordgo.User, ResolvedUser, UserID:
		kind = discordgo.ApplicationCommandOptionUser
	case discordgo.Channel, ChannelID:
		kind = discordgo.ApplicationCommandOptionChannel
	case discordgo.Role, RoleID:
		kind = discordgo.ApplicationCommandOptionRole
	case ResolvedMentionable, MentionableID:
		kind = discordgo.ApplicationCommandOptionMentionable
	case discordgo.MessageAttachment, AttachmentID:
		kind = discordgo.ApplicationCommandOptionAttachment
	default:
		return nil, &SchemaError{Item: data.Name, Err: fmt.Errorf("%w: %T", ErrUnsupportedType, zero)}
	}
	return data.Build(kind), nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

func invalidType(opt *discordgo.ApplicationCommandInteractionDataOption) error {
	return fmt.Errorf("%w: found %v", ErrInvalidType, opt.Type)
}

func lookupFailed(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrLookupFailed, kind, id)
}

func stringValue(opt *discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	if opt.Type != discordgo.ApplicationCommandOptionString {
		return "", invalidType(opt)
	}
	s, ok := opt.Value.(string)
	if !ok {
		return "", invalidType(opt)
	}
	return s, nil
}

func checkLength(s string, data CommandOptionData) error {
	n := utf8.RuneCountInString(s)
	if data.MinLength != nil && n < *data.MinLength {
		return fmt.Errorf("%w: %d < %d", ErrStringLengthOutOfRange, n, *data.MinLength)
	}
	if data.MaxLength != nil && n > *data.MaxLength {
		return fmt.Errorf("%w: %d > %d", ErrStringLengthOutOfRange, n, *data.MaxLength)
	}
	return nil
}

// rawNumber reads a numeric wire value. Values decoded from JSON arrive as float64.
func rawNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func integerValue(opt *discordgo.ApplicationCommandInteractionDataOption, data CommandOptionData) (int64, error) {
	if opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, invalidType(opt)
	}
	var n int64
	switch v := opt.Value.(type) {
	case int64:
		n = v
	case int:
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, invalidType(opt)
		}
		n = i
	default:
		f, ok := rawNumber(v)
		if !ok || f != math.Trunc(f) {
			return 0, invalidType(opt)
		}
		n = int64(f)
	}
	if data.MinValue != nil && float64(n) < data.MinValue.Number() {
		return 0, fmt.Errorf("%w: %d < %s", ErrIntegerOutOfRange, n, data.MinValue)
	}
	if data.MaxValue != nil && float64(n) > data.MaxValue.Number() {
		return 0, fmt.Errorf("%w: %d > %s", ErrIntegerOutOfRange, n, data.MaxValue)
	}
	return n, nil
}

func numberValue(opt *discordgo.ApplicationCommandInteractionDataOption, data CommandOptionData) (float64, error) {
	if opt.Type != discordgo.ApplicationCommandOptionNumber {
		return 0, invalidType(opt)
	}
	f, ok := rawNumber(opt.Value)
	if !ok {
		return 0, invalidType(opt)
	}
	if data.MinValue != nil && f < data.MinValue.Number() {
		return 0, fmt.Errorf("%w: %g < %s", ErrNumberOutOfRange, f, data.MinValue)
	}
	if data.MaxValue != nil && f > data.MaxValue.Number() {
		return 0, fmt.Errorf("%w: %g > %s", ErrNumberOutOfRange, f, data.MaxValue)
	}
	return f, nil
}

func idValue(opt *discordgo.ApplicationCommandInteractionDataOption, kind discordgo.ApplicationCommandOptionType) (string, error) {
	if opt.Type != kind {
		return "", invalidType(opt)
	}
	id, ok := opt.Value.(string)
	if !ok || id == "" {
		return "", invalidType(opt)
	}
	return id, nil
}
