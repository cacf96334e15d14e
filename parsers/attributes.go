package parsers

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/arran4/go-interactions/model"
)

// Attr is a single key=value argument of a directive.
type Attr struct {
	Key    string
	KeyPos token.Pos
	Pos    token.Pos
	// Kind is token.STRING, token.INT, token.FLOAT or token.IDENT. Function
	// references like pkg.Func are reported as token.IDENT.
	Kind token.Token
	// Raw is the value as written, with a leading minus sign for negative numbers.
	Raw string
}

// NamedAttrs holds the arguments of one directive.
type NamedAttrs struct {
	Pos   token.Pos
	Attrs []*Attr
	index map[string]*Attr
}

// ParseNamedAttrs parses text, the part of a directive after its kind. pos is
// the position of text in its file and valid lists the accepted keys.
func ParseNamedAttrs(text string, pos token.Pos, valid []string) (*NamedAttrs, error) {
	src := []byte(text)
	file := token.NewFileSet().AddFile("", -1, len(src))
	var scanErr error
	var s scanner.Scanner
	s.Init(file, src, func(p token.Position, msg string) {
		if scanErr == nil {
			scanErr = Errorf(pos+token.Pos(p.Offset), "%s", msg)
		}
	}, 0)

	at := func(p token.Pos) token.Pos {
		return pos + token.Pos(file.Offset(p))
	}

	attrs := &NamedAttrs{Pos: pos, index: map[string]*Attr{}}
	next := func() (token.Pos, token.Token, string) {
		p, tok, lit := s.Scan()
		if tok == token.SEMICOLON && lit == "\n" {
			tok = token.EOF
		}
		return p, tok, lit
	}

	p, tok, lit := next()
	for tok != token.EOF {
		if tok != token.IDENT {
			return nil, Errorf(at(p), "expected argument name, found %s", describe(tok, lit))
		}
		attr := &Attr{Key: lit, KeyPos: at(p)}
		if !contains(valid, attr.Key) {
			return nil, Errorf(attr.KeyPos, "invalid argument name `%s` (expected one of %s)", attr.Key, quoteList(valid))
		}
		if _, dup := attrs.index[attr.Key]; dup {
			return nil, Errorf(attr.KeyPos, "duplicate argument `%s`", attr.Key)
		}
		if p, tok, lit = next(); tok != token.ASSIGN {
			return nil, Errorf(at(p), "expected `=` after `%s`", attr.Key)
		}

		p, tok, lit = next()
		attr.Pos = at(p)
		switch tok {
		case token.STRING, token.INT, token.FLOAT:
			attr.Kind, attr.Raw = tok, lit
		case token.SUB:
			p, tok, lit = next()
			if tok != token.INT && tok != token.FLOAT {
				return nil, Errorf(at(p), "expected number after `-`")
			}
			attr.Kind, attr.Raw = tok, "-"+lit
		case token.IDENT:
			attr.Kind, attr.Raw = tok, lit
		default:
			return nil, Errorf(at(p), "expected literal value for `%s`, found %s", attr.Key, describe(tok, lit))
		}
		attrs.add(attr)

		p, tok, lit = next()
		if attr.Kind == token.IDENT && tok == token.PERIOD {
			if p, tok, lit = next(); tok != token.IDENT {
				return nil, Errorf(at(p), "expected identifier after `.`")
			}
			attr.Raw += "." + lit
			p, tok, lit = next()
		}

		switch tok {
		case token.COMMA:
			p, tok, lit = next()
		case token.EOF:
		default:
			return nil, Errorf(at(p), "expected `,` between arguments, found %s", describe(tok, lit))
		}
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return attrs, nil
}

func (a *NamedAttrs) add(attr *Attr) {
	a.Attrs = append(a.Attrs, attr)
	a.index[attr.Key] = attr
}

// Get returns the argument named key.
func (a *NamedAttrs) Get(key string) (*Attr, bool) {
	if a == nil {
		return nil, false
	}
	attr, ok := a.index[key]
	return attr, ok
}

// Has reports whether key was supplied.
func (a *NamedAttrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Required fails when key was not supplied.
func (a *NamedAttrs) Required(key string) error {
	if !a.Has(key) {
		pos := token.NoPos
		if a != nil {
			pos = a.Pos
		}
		return Errorf(pos, "missing required `%s` argument", key)
	}
	return nil
}

// String returns a string argument.
func (a *NamedAttrs) String(key string) (string, bool, error) {
	attr, ok := a.Get(key)
	if !ok {
		return "", false, nil
	}
	if attr.Kind != token.STRING {
		return "", false, Errorf(attr.Pos, "expected string literal")
	}
	s, err := strconv.Unquote(attr.Raw)
	if err != nil {
		return "", false, Errorf(attr.Pos, "invalid string literal: %v", err)
	}
	return s, true, nil
}

// Bool returns a boolean argument, nil when absent.
func (a *NamedAttrs) Bool(key string) (*bool, error) {
	attr, ok := a.Get(key)
	if !ok {
		return nil, nil
	}
	if attr.Kind != token.IDENT || (attr.Raw != "true" && attr.Raw != "false") {
		return nil, Errorf(attr.Pos, "expected boolean literal")
	}
	b := attr.Raw == "true"
	return &b, nil
}

// Flag returns a boolean argument, false when absent.
func (a *NamedAttrs) Flag(key string) (bool, error) {
	b, err := a.Bool(key)
	if err != nil || b == nil {
		return false, err
	}
	return *b, nil
}

// Uint16 returns an integer argument between 0 and 65535, nil when absent.
func (a *NamedAttrs) Uint16(key string) (*int, error) {
	attr, ok := a.Get(key)
	if !ok {
		return nil, nil
	}
	if attr.Kind != token.INT {
		return nil, Errorf(attr.Pos, "expected integer literal")
	}
	n, err := strconv.ParseUint(attr.Raw, 0, 16)
	if err != nil {
		return nil, Errorf(attr.Pos, "expected integer between 0 and 65535")
	}
	v := int(n)
	return &v, nil
}

// Number returns an integer or floating point argument, nil when absent.
func (a *NamedAttrs) Number(key string) (*model.NumberLiteral, error) {
	attr, ok := a.Get(key)
	if !ok {
		return nil, nil
	}
	switch attr.Kind {
	case token.INT:
		if _, err := strconv.ParseInt(attr.Raw, 0, 64); err != nil {
			return nil, Errorf(attr.Pos, "integer out of range: %s", attr.Raw)
		}
		return &model.NumberLiteral{Integer: true, Literal: attr.Raw}, nil
	case token.FLOAT:
		if _, err := strconv.ParseFloat(attr.Raw, 64); err != nil {
			return nil, Errorf(attr.Pos, "invalid floating point literal: %s", attr.Raw)
		}
		return &model.NumberLiteral{Literal: attr.Raw}, nil
	}
	return nil, Errorf(attr.Pos, "expected integer or floating point literal")
}

// FuncRef returns a function reference written as an identifier, a qualified
// identifier or a string literal holding one.
func (a *NamedAttrs) FuncRef(key string) (string, error) {
	attr, ok := a.Get(key)
	if !ok {
		return "", nil
	}
	ref := attr.Raw
	switch attr.Kind {
	case token.IDENT:
		if ref == "true" || ref == "false" {
			return "", Errorf(attr.Pos, "expected function reference")
		}
		return ref, nil
	case token.STRING:
		s, err := strconv.Unquote(ref)
		if err != nil || !isQualifiedIdent(s) {
			return "", Errorf(attr.Pos, "expected function reference")
		}
		return s, nil
	}
	return "", Errorf(attr.Pos, "expected function reference")
}

// Name returns a validated command, option or choice name.
func (a *NamedAttrs) Name(key string) (string, bool, error) {
	s, ok, err := a.String(key)
	if err != nil || !ok {
		return "", ok, err
	}
	name, err := ValidateName(s)
	if err != nil {
		attr, _ := a.Get(key)
		return "", false, Errorf(attr.Pos, "%v", err)
	}
	return name, true, nil
}

// Description returns a validated description.
func (a *NamedAttrs) Description(key string) (string, bool, error) {
	s, ok, err := a.String(key)
	if err != nil || !ok {
		return "", ok, err
	}
	desc, err := ValidateDescription(s)
	if err != nil {
		attr, _ := a.Get(key)
		return "", false, Errorf(attr.Pos, "%v", err)
	}
	return desc, true, nil
}

// LengthString returns a string whose length is between min and max characters.
func (a *NamedAttrs) LengthString(key string, min, max int) (string, bool, error) {
	s, ok, err := a.String(key)
	if err != nil || !ok {
		return "", ok, err
	}
	if err := ValidateLength(s, min, max); err != nil {
		attr, _ := a.Get(key)
		return "", false, Errorf(attr.Pos, "`%s` %v", key, err)
	}
	return s, true, nil
}

// List returns a space separated string argument.
func (a *NamedAttrs) List(key string) ([]string, error) {
	s, ok, err := a.String(key)
	if err != nil || !ok {
		return nil, err
	}
	return strings.Fields(s), nil
}

// Exclusive fails when both keys were supplied.
func (a *NamedAttrs) Exclusive(first, second string) error {
	if a.Has(first) && a.Has(second) {
		attr, _ := a.Get(second)
		return Errorf(attr.KeyPos, "`%s` and `%s` are mutually exclusive", first, second)
	}
	return nil
}

// Canonical renders the arguments in the order of keys.
func (a *NamedAttrs) Canonical(keys []string) string {
	var parts []string
	for _, k := range keys {
		if attr, ok := a.Get(k); ok {
			parts = append(parts, attr.Key+"="+attr.Raw)
		}
	}
	return strings.Join(parts, ", ")
}

func isQualifiedIdent(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if !token.IsIdentifier(p) {
			return false
		}
	}
	return true
}

func describe(tok token.Token, lit string) string {
	switch tok {
	case token.EOF:
		return "end of directive"
	case token.IDENT, token.STRING, token.INT, token.FLOAT, token.CHAR:
		return fmt.Sprintf("`%s`", lit)
	}
	return fmt.Sprintf("`%s`", tok)
}

func quoteList(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "`" + k + "`"
	}
	return strings.Join(quoted, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
