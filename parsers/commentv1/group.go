package commentv1

import (
	"go/ast"

	"github.com/arran4/go-interactions/model"
	"github.com/arran4/go-interactions/parsers"
)

func (c *collector) group(ts *ast.TypeSpec, doc *ast.CommentGroup, d *Directive) error {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return parsers.Errorf(ts.Name.Pos(), "`%s` directive requires a struct type", d.Kind)
	}
	a, err := attrs(d, true, ts.Pos())
	if err != nil {
		return err
	}
	if err := a.Required("name"); err != nil {
		return err
	}
	ta, err := typeAttribute(a)
	if err != nil {
		return err
	}
	g := &model.Group{
		TypeName:   ts.Name.Name,
		Position:   c.fset.Position(ts.Name.Pos()),
		Attributes: ta,
	}
	if g.Description, err = description(ta.Desc, ta.DescLocalizations, ts, doc); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return parsers.Errorf(field.Pos(), "embedded fields are not supported")
		}
		star, ok := field.Type.(*ast.StarExpr)
		if !ok || typeName(star.X) == "" {
			return parsers.Errorf(field.Type.Pos(), "variant must be a pointer to a command type")
		}
		sd, err := single(FindDirectives(field.Doc, field.Comment), DirectiveSubcommand)
		if err != nil {
			return err
		}
		if sd == nil {
			return parsers.Errorf(field.Pos(), "missing `subcommand` directive on variant")
		}
		sa, err := attrs(sd, false, field.Pos())
		if err != nil {
			return err
		}
		if err := sa.Required("name"); err != nil {
			return err
		}
		name, _, err := sa.Name("name")
		if err != nil {
			return err
		}
		if len(field.Names) > 1 {
			return parsers.Errorf(field.Names[1].Pos(), "each variant needs its own `subcommand` directive")
		}
		if seen[name] {
			return parsers.Errorf(sd.Pos, "duplicate subcommand name `%s`", name)
		}
		seen[name] = true
		typ, err := c.qualify(star.X)
		if err != nil {
			return err
		}
		g.Variants = append(g.Variants, &model.Variant{
			Ident:    field.Names[0].Name,
			Type:     typ,
			Position: c.fset.Position(field.Names[0].Pos()),
			Name:     name,
		})
	}
	if len(g.Variants) == 0 {
		return parsers.Errorf(ts.Name.Pos(), "group must have at least one variant")
	}
	if len(g.Variants) > maxOptions {
		return parsers.Errorf(ts.Name.Pos(), "a group can have at most %d variants", maxOptions)
	}
	c.model.Groups = append(c.model.Groups, g)
	return nil
}
