package commentv1

import (
	"go/ast"

	"github.com/arran4/go-interactions/model"
	"github.com/arran4/go-interactions/parsers"
)

func (c *collector) modal(ts *ast.TypeSpec, d *Directive) error {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return parsers.Errorf(ts.Name.Pos(), "`%s` directive requires a struct type", d.Kind)
	}
	a, err := attrs(d, true, ts.Pos())
	if err != nil {
		return err
	}
	if err := a.Required("title"); err != nil {
		return err
	}
	m := &model.Modal{
		TypeName: ts.Name.Name,
		Position: c.fset.Position(ts.Name.Pos()),
	}
	if m.Attributes.Title, _, err = a.LengthString("title", 1, 45); err != nil {
		return err
	}
	if m.Attributes.CustomID, _, err = a.LengthString("custom_id", 1, 100); err != nil {
		return err
	}

	locals := parsers.NewLocals()
	seen := map[string]bool{}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return parsers.Errorf(field.Pos(), "embedded fields are not supported")
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			mf, err := c.input(field, name)
			if err != nil {
				return err
			}
			if seen[mf.CustomID] {
				return parsers.Errorf(name.Pos(), "duplicate custom id `%s`", mf.CustomID)
			}
			seen[mf.CustomID] = true
			if mf.Kind == model.Required {
				mf.SeenVar = locals.Name("seen", mf.Ident)
			}
			m.Fields = append(m.Fields, mf)
		}
	}
	if len(m.Fields) == 0 {
		return parsers.Errorf(ts.Name.Pos(), "modal must have at least one field")
	}
	if len(m.Fields) > 5 {
		return parsers.Errorf(ts.Name.Pos(), "modal can have at most five fields")
	}
	c.model.Modals = append(c.model.Modals, m)
	return nil
}

func (c *collector) input(field *ast.Field, name *ast.Ident) (*model.ModalField, error) {
	kind := model.Required
	switch t := field.Type.(type) {
	case *ast.Ident:
		if t.Name != "string" {
			return nil, parsers.Errorf(t.Pos(), "modal fields must be string or *string")
		}
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); !ok || id.Name != "string" {
			return nil, parsers.Errorf(t.Pos(), "modal fields must be string or *string")
		}
		kind = model.Optional
	default:
		return nil, parsers.Errorf(field.Type.Pos(), "modal fields must be string or *string")
	}

	d, err := single(FindDirectives(field.Doc, field.Comment), DirectiveInput)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, parsers.Errorf(name.Pos(), "missing `input` directive on field %s", name.Name)
	}
	a, err := attrs(d, false, field.Pos())
	if err != nil {
		return nil, err
	}
	fa, err := inputAttribute(a)
	if err != nil {
		return nil, err
	}
	mf := &model.ModalField{
		Ident:      name.Name,
		Position:   c.fset.Position(name.Pos()),
		Kind:       kind,
		CustomID:   fa.CustomID,
		Attributes: fa,
	}
	if mf.CustomID == "" {
		mf.CustomID = parsers.ToSnakeCase(name.Name)
	}
	return mf, nil
}

func inputAttribute(a *parsers.NamedAttrs) (model.ModalFieldAttribute, error) {
	var fa model.ModalFieldAttribute
	var err error
	for _, key := range []string{"label", "style"} {
		if err := a.Required(key); err != nil {
			return fa, err
		}
	}
	if fa.Label, _, err = a.LengthString("label", 1, 45); err != nil {
		return fa, err
	}
	if fa.CustomID, _, err = a.LengthString("custom_id", 1, 100); err != nil {
		return fa, err
	}
	style, _, err := a.String("style")
	if err != nil {
		return fa, err
	}
	if style != textInputStyles[0] && style != textInputStyles[1] {
		attr, _ := a.Get("style")
		return fa, parsers.Errorf(attr.Pos, "invalid style `%s` (expected `short` or `paragraph`)", style)
	}
	fa.Style = style
	if fa.Value, _, err = a.LengthString("value", 1, 4000); err != nil {
		return fa, err
	}
	if fa.Placeholder, _, err = a.LengthString("placeholder", 1, 1000); err != nil {
		return fa, err
	}
	if fa.MinLength, err = a.Uint16("min_length"); err != nil {
		return fa, err
	}
	if fa.MaxLength, err = a.Uint16("max_length"); err != nil {
		return fa, err
	}
	return fa, nil
}
