package interactions

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// AutocompleteState tells which AutocompleteValue field holds a value.
type AutocompleteState int

const (
	// AutocompleteNone means the option was not received.
	AutocompleteNone AutocompleteState = iota
	// AutocompleteFocused means the user is typing into the option.
	AutocompleteFocused
	// AutocompleteCompleted means the option holds a complete value.
	AutocompleteCompleted
)

func (s AutocompleteState) String() string {
	switch s {
	case AutocompleteNone:
		return "none"
	case AutocompleteFocused:
		return "focused"
	case AutocompleteCompleted:
		return "completed"
	}
	return fmt.Sprintf("AutocompleteState(%d)", int(s))
}

// AutocompleteValue is an option of an autocomplete model. Its zero value is
// the not yet focused state.
type AutocompleteValue[T any] struct {
	State AutocompleteState
	// Input is the partial text of a focused option.
	Input string
	// Value is the parsed value of a completed option.
	Value T
}

// Focused returns the partial input and whether the option is focused.
func (a AutocompleteValue[T]) Focused() (string, bool) {
	return a.Input, a.State == AutocompleteFocused
}

// Completed returns the value and whether the option was completed.
func (a AutocompleteValue[T]) Completed() (T, bool) {
	return a.Value, a.State == AutocompleteCompleted
}

func (a *AutocompleteValue[T]) FromOption(opt *discordgo.ApplicationCommandInteractionDataOption, data CommandOptionData, resolved *discordgo.ApplicationCommandInteractionDataResolved) error {
	if opt.Focused {
		*a = AutocompleteValue[T]{State: AutocompleteFocused}
		if opt.Value != nil {
			a.Input = fmt.Sprint(opt.Value)
		}
		return nil
	}
	var v T
	if err := ParseOption(&v, opt, data, resolved); err != nil {
		return err
	}
	*a = AutocompleteValue[T]{State: AutocompleteCompleted, Value: v}
	return nil
}
