package interactions

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// DefaultLocale is used as the description when a DescLocalizations has no fallback.
const DefaultLocale = discordgo.EnglishUS

// NameLocalizations maps locales to localized command, option or choice names.
//
// Functions referenced by a `name_localizations` argument return this type.
type NameLocalizations map[discordgo.Locale]string

// NewNameLocalizations builds localizations from locale/name pairs.
func NewNameLocalizations(pairs ...string) NameLocalizations {
	l := make(NameLocalizations, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		l[discordgo.Locale(pairs[i])] = pairs[i+1]
	}
	return l
}

// DescLocalizations holds a fallback description and its localized variants.
//
// Functions referenced by a `desc_localizations` argument return this type.
type DescLocalizations struct {
	Fallback      string
	Localizations map[discordgo.Locale]string
}

// NewDescLocalizations builds localizations from a fallback and locale/description pairs.
func NewDescLocalizations(fallback string, pairs ...string) DescLocalizations {
	l := DescLocalizations{
		Fallback:      fallback,
		Localizations: make(map[discordgo.Locale]string, len(pairs)/2),
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		l.Localizations[discordgo.Locale(pairs[i])] = pairs[i+1]
	}
	return l
}

// ResolveDescription returns the description to register for item along with its
// localizations. The fallback is used first, then the DefaultLocale entry.
func ResolveDescription(item string, l DescLocalizations) (string, map[discordgo.Locale]string, error) {
	desc := strings.TrimSpace(l.Fallback)
	if desc == "" {
		desc = strings.TrimSpace(l.Localizations[DefaultLocale])
	}
	if desc == "" {
		return "", nil, &SchemaError{Item: item, Err: ErrMissingDescription}
	}
	if utf8.RuneCountInString(desc) > 100 {
		return "", nil, &SchemaError{Item: item, Err: ErrInvalidDescription}
	}
	if len(l.Localizations) == 0 {
		return desc, nil, nil
	}
	return desc, l.Localizations, nil
}
