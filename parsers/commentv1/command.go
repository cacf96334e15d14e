package commentv1

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/arran4/go-interactions/model"
	"github.com/arran4/go-interactions/parsers"
)

// maxOptions is the number of options Discord accepts per command.
const maxOptions = 25

func (c *collector) command(ts *ast.TypeSpec, doc *ast.CommentGroup, d *Directive) error {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return parsers.Errorf(ts.Name.Pos(), "`%s` directive requires a struct type", d.Kind)
	}
	a, err := attrs(d, true, ts.Pos())
	if err != nil {
		return err
	}
	ta, err := typeAttribute(a)
	if err != nil {
		return err
	}
	cmd := &model.Command{
		TypeName:   ts.Name.Name,
		Position:   c.fset.Position(ts.Name.Pos()),
		Attributes: ta,
	}
	if cmd.HasSchema() {
		if err := a.Required("name"); err != nil {
			return err
		}
		if cmd.Description, err = description(ta.Desc, ta.DescLocalizations, ts, doc); err != nil {
			return err
		}
	}

	locals := parsers.NewLocals()
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return parsers.Errorf(field.Pos(), "embedded fields are not supported")
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			sf, err := c.field(field, name, cmd)
			if err != nil {
				return err
			}
			if sf.Kind == model.Required {
				sf.SeenVar = locals.Name("seen", sf.Ident)
			}
			cmd.Fields = append(cmd.Fields, sf)
		}
	}

	if err := checkFields(cmd, st); err != nil {
		return err
	}
	c.model.Commands = append(c.model.Commands, cmd)
	return nil
}

// checkFields validates the options of cmd as a whole.
func checkFields(cmd *model.Command, st *ast.StructType) error {
	if len(cmd.Fields) > maxOptions {
		return parsers.Errorf(st.Pos(), "a command can have at most %d options", maxOptions)
	}
	seen := map[string]bool{}
	optional := false
	for i, f := range cmd.Fields {
		if seen[f.OptionName] {
			return parsers.Errorf(fieldPos(st, i), "duplicate option name `%s`", f.OptionName)
		}
		seen[f.OptionName] = true
		if !cmd.HasSchema() {
			continue
		}
		switch f.Kind {
		case model.Optional:
			optional = true
		case model.Required:
			if optional {
				return parsers.Errorf(fieldPos(st, i), "required options must precede optional options")
			}
		}
	}
	return nil
}

// fieldPos returns the position of the i-th named field of st.
func fieldPos(st *ast.StructType, i int) token.Pos {
	n := 0
	for _, field := range st.Fields.List {
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			if n == i {
				return name.Pos()
			}
			n++
		}
	}
	return st.Pos()
}

func (c *collector) field(field *ast.Field, name *ast.Ident, cmd *model.Command) (*model.StructField, error) {
	kind, base, err := classify(field.Type)
	if err != nil {
		return nil, err
	}
	autocomplete := cmd.Attributes.Autocomplete
	if kind == model.Autocomplete && !autocomplete {
		return nil, parsers.Errorf(field.Type.Pos(), "autocomplete values are only allowed in models with `autocomplete=true`")
	}
	if kind == model.Required && autocomplete {
		return nil, parsers.Errorf(field.Type.Pos(), "autocomplete models only allow optional or autocomplete fields")
	}

	d, err := single(FindDirectives(field.Doc, field.Comment), DirectiveOption)
	if err != nil {
		return nil, err
	}
	a, err := attrs(d, false, field.Pos())
	if err != nil {
		return nil, err
	}
	fa, err := fieldAttribute(a)
	if err != nil {
		return nil, err
	}

	typ, err := c.qualify(base)
	if err != nil {
		return nil, err
	}
	sf := &model.StructField{
		Ident:      name.Name,
		Type:       typ,
		Position:   c.fset.Position(name.Pos()),
		Kind:       kind,
		OptionName: fa.Rename,
		Attributes: fa,
	}
	if sf.OptionName == "" {
		optionName, err := parsers.ValidateName(parsers.ToSnakeCase(name.Name))
		if err != nil {
			return nil, parsers.Errorf(name.Pos(), "option name of field %s is invalid (%v), set `rename`", name.Name, err)
		}
		sf.OptionName = optionName
	}
	if cmd.HasSchema() {
		if sf.Description, err = description(fa.Desc, fa.DescLocalizations, field, field.Doc, field.Comment); err != nil {
			return nil, err
		}
	}
	return sf, nil
}

// classify strips the optional or autocomplete wrapper of a field type.
func classify(expr ast.Expr) (model.FieldKind, ast.Expr, error) {
	if star, ok := expr.(*ast.StarExpr); ok {
		if _, ok := autocompleteValue(star.X); ok {
			return 0, nil, parsers.Errorf(expr.Pos(), "autocomplete cannot be wrapped in optional")
		}
		if err := checkOptionType(star.X); err != nil {
			return 0, nil, err
		}
		return model.Optional, star.X, nil
	}
	if inner, ok := autocompleteValue(expr); ok {
		if err := checkOptionType(inner); err != nil {
			return 0, nil, err
		}
		return model.Autocomplete, inner, nil
	}
	if err := checkOptionType(expr); err != nil {
		return 0, nil, err
	}
	return model.Required, expr, nil
}

func autocompleteValue(expr ast.Expr) (ast.Expr, bool) {
	idx, ok := expr.(*ast.IndexExpr)
	if !ok {
		return nil, false
	}
	switch x := idx.X.(type) {
	case *ast.SelectorExpr:
		if x.Sel.Name == "AutocompleteValue" {
			return idx.Index, true
		}
	case *ast.Ident:
		if x.Name == "AutocompleteValue" {
			return idx.Index, true
		}
	}
	return nil, false
}

func checkOptionType(expr ast.Expr) error {
	switch expr.(type) {
	case *ast.Ident, *ast.SelectorExpr:
		return nil
	case *ast.StarExpr:
		return parsers.Errorf(expr.Pos(), "optional options are declared with a single pointer")
	}
	return parsers.Errorf(expr.Pos(), "unsupported option type %s", types.ExprString(expr))
}

func typeAttribute(a *parsers.NamedAttrs) (model.TypeAttribute, error) {
	var ta model.TypeAttribute
	var err error
	if ta.Name, _, err = a.Name("name"); err != nil {
		return ta, err
	}
	if ta.NameLocalizations, err = a.FuncRef("name_localizations"); err != nil {
		return ta, err
	}
	if err := a.Exclusive("desc", "desc_localizations"); err != nil {
		return ta, err
	}
	if ta.Desc, _, err = a.Description("desc"); err != nil {
		return ta, err
	}
	if ta.DescLocalizations, err = a.FuncRef("desc_localizations"); err != nil {
		return ta, err
	}
	if ta.DefaultPermissions, err = a.FuncRef("default_permissions"); err != nil {
		return ta, err
	}
	if ta.DMPermission, err = a.Bool("dm_permission"); err != nil {
		return ta, err
	}
	if ta.NSFW, err = a.Bool("nsfw"); err != nil {
		return ta, err
	}
	if ta.Contexts, err = lookupList(a, "contexts", interactionContexts); err != nil {
		return ta, err
	}
	if ta.IntegrationTypes, err = lookupList(a, "integration_types", integrationTypes); err != nil {
		return ta, err
	}
	if ta.Autocomplete, err = a.Flag("autocomplete"); err != nil {
		return ta, err
	}
	if ta.Partial, err = a.Flag("partial"); err != nil {
		return ta, err
	}
	return ta, nil
}

func fieldAttribute(a *parsers.NamedAttrs) (model.FieldAttribute, error) {
	var fa model.FieldAttribute
	var err error
	if fa.Rename, _, err = a.Name("rename"); err != nil {
		return fa, err
	}
	if fa.NameLocalizations, err = a.FuncRef("name_localizations"); err != nil {
		return fa, err
	}
	if err := a.Exclusive("desc", "desc_localizations"); err != nil {
		return fa, err
	}
	if fa.Desc, _, err = a.Description("desc"); err != nil {
		return fa, err
	}
	if fa.DescLocalizations, err = a.FuncRef("desc_localizations"); err != nil {
		return fa, err
	}
	if fa.Autocomplete, err = a.Flag("autocomplete"); err != nil {
		return fa, err
	}
	if fa.ChannelTypes, err = lookupList(a, "channel_types", channelTypes); err != nil {
		return fa, err
	}
	if fa.MaxValue, err = a.Number("max_value"); err != nil {
		return fa, err
	}
	if fa.MinValue, err = a.Number("min_value"); err != nil {
		return fa, err
	}
	if fa.MaxLength, err = a.Uint16("max_length"); err != nil {
		return fa, err
	}
	if fa.MinLength, err = a.Uint16("min_length"); err != nil {
		return fa, err
	}
	return fa, nil
}

// lookupList maps the space separated names of a list argument through table.
func lookupList(a *parsers.NamedAttrs, key string, table map[string]string) ([]string, error) {
	names, err := a.List(key)
	if err != nil || len(names) == 0 {
		return nil, err
	}
	var out []string
	for _, n := range names {
		v, ok := table[n]
		if !ok {
			attr, _ := a.Get(key)
			return nil, parsers.Errorf(attr.Pos, "invalid %s `%s` (expected one of %s)", strings.TrimSuffix(key, "s"), n, strings.Join(sortedKeys(table), ", "))
		}
		out = append(out, v)
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// description resolves the static description of a command or option. It is
// empty when a localization function provides it.
func description(desc, localizations string, node ast.Node, docs ...*ast.CommentGroup) (string, error) {
	if localizations != "" {
		return "", nil
	}
	if desc != "" {
		return desc, nil
	}
	line := firstLine(docs...)
	if line == "" {
		return "", parsers.Errorf(node.Pos(), "description is required (documentation comment or `desc` attribute)")
	}
	valid, err := parsers.ValidateDescription(line)
	if err != nil {
		return "", parsers.Errorf(node.Pos(), "%v", err)
	}
	return valid, nil
}
