package commentv1

import (
	"go/ast"
	"go/constant"
	"go/token"

	"github.com/arran4/go-interactions/model"
	"github.com/arran4/go-interactions/parsers"
)

// maxChoices is the number of choices Discord accepts per option.
const maxChoices = 25

func (c *collector) choiceType(ts *ast.TypeSpec, d *Directive) error {
	if _, err := attrs(d, true, ts.Pos()); err != nil {
		return err
	}
	ident, ok := ts.Type.(*ast.Ident)
	if !ok || ts.Assign.IsValid() {
		return parsers.Errorf(ts.Name.Pos(), "`choice` directive requires a defined string, integer or float type")
	}
	kind, ok := underlyingKind(ident.Name)
	if !ok {
		return parsers.Errorf(ident.Pos(), "unsupported choice type %s (expected string, integer or float)", ident.Name)
	}
	c.choices = append(c.choices, &pendingChoice{
		spec: ts,
		choice: &model.Choice{
			TypeName: ts.Name.Name,
			Position: c.fset.Position(ts.Name.Pos()),
			Kind:     kind,
		},
	})
	return nil
}

func underlyingKind(name string) (model.ChoiceKind, bool) {
	switch name {
	case "string":
		return model.StringChoice, true
	case "int", "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32":
		return model.IntegerChoice, true
	case "float32", "float64":
		return model.NumberChoice, true
	}
	return 0, false
}

// resolveChoice collects the annotated constants of a choice type.
func (c *collector) resolveChoice(p *pendingChoice) error {
	ch := p.choice
	var values []constant.Value
	for _, cs := range c.consts {
		if cs.typeName != ch.TypeName {
			continue
		}
		d, err := single(FindDirectives(cs.doc, cs.spec.Comment), DirectiveChoice)
		if err != nil {
			return err
		}
		if d == nil {
			continue
		}
		lit, value, err := choiceLiteral(cs.spec, ch.Kind)
		if err != nil {
			return err
		}
		for _, v := range values {
			if constant.Compare(v, token.EQL, value) {
				return parsers.Errorf(cs.spec.Values[0].Pos(), "duplicate choice value %s", lit)
			}
		}
		values = append(values, value)

		a, err := attrs(d, false, cs.spec.Pos())
		if err != nil {
			return err
		}
		if err := a.Required("name"); err != nil {
			return err
		}
		name, _, err := a.LengthString("name", 1, 100)
		if err != nil {
			return err
		}
		localizations, err := a.FuncRef("name_localizations")
		if err != nil {
			return err
		}
		ch.Variants = append(ch.Variants, &model.ChoiceVariant{
			Ident:             cs.spec.Names[0].Name,
			Position:          c.fset.Position(cs.spec.Names[0].Pos()),
			Name:              name,
			NameLocalizations: localizations,
			Literal:           lit,
		})
	}
	if len(ch.Variants) == 0 {
		return parsers.Errorf(p.spec.Name.Pos(), "choice must have at least one variant")
	}
	if len(ch.Variants) > maxChoices {
		return parsers.Errorf(p.spec.Name.Pos(), "a choice type can have at most %d variants", maxChoices)
	}
	return nil
}

// choiceLiteral returns the literal value of a single constant spec.
func choiceLiteral(vs *ast.ValueSpec, kind model.ChoiceKind) (string, constant.Value, error) {
	if len(vs.Names) != 1 || len(vs.Values) != 1 {
		return "", nil, parsers.Errorf(vs.Pos(), "variant must be a unit variant with a literal value")
	}
	expr := vs.Values[0]
	neg := false
	if u, ok := expr.(*ast.UnaryExpr); ok && u.Op == token.SUB {
		neg = true
		expr = u.X
	}
	if p, ok := expr.(*ast.ParenExpr); ok {
		expr = p.X
	}
	bl, ok := expr.(*ast.BasicLit)
	if !ok || (neg && bl.Kind == token.STRING) {
		return "", nil, parsers.Errorf(vs.Values[0].Pos(), "variant must be a unit variant with a literal value")
	}

	switch {
	case bl.Kind == token.STRING && kind == model.StringChoice:
	case bl.Kind == token.INT && kind != model.StringChoice:
	case bl.Kind == token.FLOAT && kind == model.NumberChoice:
	default:
		return "", nil, parsers.Errorf(bl.Pos(), "invalid attribute type, expected %s", kind)
	}

	value := constant.MakeFromLiteral(bl.Value, bl.Kind, 0)
	if value.Kind() == constant.Unknown {
		return "", nil, parsers.Errorf(bl.Pos(), "invalid literal %s", bl.Value)
	}
	lit := bl.Value
	if neg {
		value = constant.UnaryOp(token.SUB, value, 0)
		lit = "-" + lit
	}
	if kind == model.IntegerChoice {
		if _, exact := constant.Int64Val(value); !exact {
			return "", nil, parsers.Errorf(bl.Pos(), "integer out of range: %s", lit)
		}
	}
	return lit, value, nil
}
