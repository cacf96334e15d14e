package parsers

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// ToSnakeCase converts a Go identifier to the snake_case form used for
// default option names and modal custom ids (MaxResults -> max_results).
func ToSnakeCase(ident string) string {
	return strcase.ToSnake(ident)
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// LocalName joins parts into a lowerCamelCase identifier. Runes that cannot
// appear in an identifier separate words.
func LocalName(parts ...string) string {
	words := strings.Map(func(r rune) rune {
		if isIdentRune(r) {
			return r
		}
		return '_'
	}, strings.Join(parts, "_"))

	camel := strcase.ToCamel(words)
	first, size := utf8.DecodeRuneInString(camel)
	switch {
	case camel == "":
		return "v"
	case unicode.IsDigit(first):
		return "v" + camel
	}
	return string(unicode.ToLower(first)) + camel[size:]
}

// generatedLocals are declared by the generated methods themselves.
var generatedLocals = []string{
	"c", "m", "t", "v", "data", "opt", "err", "input",
	"options", "option", "command", "desc", "descLocalizations", "permissions",
	"interactions", "discordgo",
}

// Locals hands out the local variable names of one generated method.
type Locals struct {
	taken map[string]bool
}

// NewLocals returns a Locals with the names generated code declares taken.
func NewLocals() *Locals {
	l := &Locals{taken: make(map[string]bool, len(generatedLocals))}
	for _, name := range generatedLocals {
		l.taken[name] = true
	}
	return l
}

// Name returns LocalName(parts...), numbered from 2 when it is already taken.
func (l *Locals) Name(parts ...string) string {
	base := LocalName(parts...)
	name := base
	for n := 2; l.taken[name]; n++ {
		name = base + strconv.Itoa(n)
	}
	l.taken[name] = true
	return name
}
