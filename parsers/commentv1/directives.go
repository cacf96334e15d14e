package commentv1

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/arran4/go-interactions/parsers"
)

// Directive is one `//interactions:<kind> args` comment line.
type Directive struct {
	Kind string
	Args string
	// Pos is the position of Args.
	Pos token.Pos
	// Comment is the comment line holding the directive.
	Comment *ast.Comment
}

// FindDirectives returns the directives found in groups, in source order.
func FindDirectives(groups ...*ast.CommentGroup) []*Directive {
	var out []*Directive
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if d, ok := ParseDirective(c); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

// ParseDirective splits a comment line into a directive.
func ParseDirective(c *ast.Comment) (*Directive, bool) {
	if !strings.HasPrefix(c.Text, DirectivePrefix) {
		return nil, false
	}
	rest := c.Text[len(DirectivePrefix):]
	kind, args, _ := strings.Cut(rest, " ")
	offset := len(DirectivePrefix) + len(kind)
	if len(rest) > len(kind) {
		offset++
	}
	return &Directive{
		Kind:    kind,
		Args:    args,
		Pos:     c.Slash + token.Pos(offset),
		Comment: c,
	}, true
}

// single returns the only directive of an allowed kind, or nil when there is none.
func single(dirs []*Directive, allowed ...string) (*Directive, error) {
	var found *Directive
	for _, d := range dirs {
		if !isKnownKind(d.Kind) {
			return nil, parsers.Errorf(d.Comment.Slash, "unknown directive `%s`", d.Kind)
		}
		ok := false
		for _, a := range allowed {
			if d.Kind == a {
				ok = true
				break
			}
		}
		if !ok {
			return nil, parsers.Errorf(d.Comment.Slash, "unexpected `%s` directive here", d.Kind)
		}
		if found != nil {
			return nil, parsers.Errorf(d.Comment.Slash, "duplicate `%s` directive", d.Kind)
		}
		found = d
	}
	return found, nil
}

// attrs parses the arguments of d, or returns an empty set when d is nil.
func attrs(d *Directive, onType bool, at token.Pos) (*parsers.NamedAttrs, error) {
	if d == nil {
		return parsers.ParseNamedAttrs("", at, nil)
	}
	return parsers.ParseNamedAttrs(d.Args, d.Pos, KeysFor(d.Kind, onType))
}

func isKnownKind(kind string) bool {
	switch kind {
	case DirectiveCommand, DirectiveGroup, DirectiveOption, DirectiveSubcommand,
		DirectiveChoice, DirectiveModal, DirectiveInput:
		return true
	}
	return false
}

// firstLine returns the first line of the documentation in groups, skipping directives.
func firstLine(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g == nil {
			continue
		}
		text := strings.TrimSpace(g.Text())
		if text == "" {
			continue
		}
		line, _, _ := strings.Cut(text, "\n")
		return strings.TrimSpace(line)
	}
	return ""
}
