package commentv1

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/arran4/go-interactions/internal/logger"
	"github.com/arran4/go-interactions/model"
	"github.com/arran4/go-interactions/parsers"
	"golang.org/x/mod/modfile"
)

func init() {
	parsers.Register("commentv1", &CommentParser{})
}

// CommentParser reads `//interactions:` directives from the Go files of a package.
type CommentParser struct{}

// ParsePackage parses the package in dir of fsys.
func ParsePackage(fsys fs.FS, dir string) (*model.DataModel, error) {
	return (&CommentParser{}).Parse(fsys, dir)
}

func (p *CommentParser) Parse(fsys fs.FS, dir string) (*model.DataModel, error) {
	dir = path.Clean(dir)
	fset := token.NewFileSet()
	d := &model.DataModel{
		FileSet: fset,
		Dir:     dir,
	}

	if modPath, modDir, ok := findModule(fsys, dir); ok {
		rel := strings.TrimPrefix(strings.TrimPrefix(dir, modDir), "/")
		if modDir == "." {
			rel = dir
			if rel == "." {
				rel = ""
			}
		}
		d.ImportPath = path.Join(modPath, rel)
		if d.ImportPath == model.RuntimeImportPath {
			return nil, fmt.Errorf("%s is the runtime package and cannot hold generated code", d.ImportPath)
		}
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	c := newCollector(fset, d)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == GeneratedFileName {
			continue
		}
		filename := path.Join(dir, name)
		src, err := fs.ReadFile(fsys, filename)
		if err != nil {
			return nil, err
		}
		f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution|parser.ParseComments)
		if err != nil {
			return nil, err
		}
		if d.PackageName == "" {
			d.PackageName = f.Name.Name
		} else if d.PackageName != f.Name.Name {
			return nil, fmt.Errorf("%s: found packages %s and %s", dir, d.PackageName, f.Name.Name)
		}
		if err := c.file(f); err != nil {
			return nil, parsers.Locate(fset, err)
		}
	}
	if err := c.finish(); err != nil {
		return nil, parsers.Locate(fset, err)
	}
	return d, nil
}

// findModule looks for the go.mod governing dir, walking up to the root of fsys.
func findModule(fsys fs.FS, dir string) (modPath, modDir string, ok bool) {
	for cur := dir; ; cur = path.Dir(cur) {
		data, err := fs.ReadFile(fsys, path.Join(cur, "go.mod"))
		if err == nil {
			if mp := modfile.ModulePath(data); mp != "" {
				return mp, cur, true
			}
			return "", "", false
		}
		if cur == "." || cur == "/" {
			return "", "", false
		}
	}
}

// collector accumulates the declarations of one package.
type collector struct {
	fset    *token.FileSet
	model   *model.DataModel
	choices []*pendingChoice
	consts  []*constSpec
	// imports maps the package names of the current file to import paths.
	imports map[string]string
}

type pendingChoice struct {
	spec   *ast.TypeSpec
	choice *model.Choice
}

type constSpec struct {
	spec *ast.ValueSpec
	// doc is the documentation of the spec, or of its declaration when unparenthesized.
	doc *ast.CommentGroup
	// typeName is the explicit or inherited type of the spec within its block.
	typeName string
}

func newCollector(fset *token.FileSet, d *model.DataModel) *collector {
	return &collector{fset: fset, model: d}
}

// file collects the annotated declarations of f.
func (c *collector) file(f *ast.File) error {
	c.imports = map[string]string{}
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := assumedName(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		c.imports[name] = p
	}
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gen.Tok {
		case token.TYPE:
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && !gen.Lparen.IsValid() {
					doc = gen.Doc
				}
				if err := c.typeSpec(ts, doc); err != nil {
					return err
				}
			}
		case token.CONST:
			current := ""
			for _, spec := range gen.Specs {
				vs := spec.(*ast.ValueSpec)
				if vs.Type != nil {
					current = typeName(vs.Type)
				} else if len(vs.Values) > 0 {
					current = ""
				}
				c.consts = append(c.consts, &constSpec{spec: vs, typeName: current})
			}
		}
	}
	return nil
}

func (c *collector) typeSpec(ts *ast.TypeSpec, doc *ast.CommentGroup) error {
	d, err := single(FindDirectives(doc), DirectiveCommand, DirectiveGroup, DirectiveChoice, DirectiveModal)
	if err != nil || d == nil {
		return err
	}
	if ts.TypeParams != nil {
		return parsers.Errorf(ts.Name.Pos(), "generic types cannot be annotated")
	}
	switch d.Kind {
	case DirectiveCommand:
		return c.command(ts, doc, d)
	case DirectiveGroup:
		return c.group(ts, doc, d)
	case DirectiveChoice:
		return c.choiceType(ts, d)
	case DirectiveModal:
		return c.modal(ts, d)
	}
	return nil
}

// finish resolves declarations spanning several files.
func (c *collector) finish() error {
	for _, p := range c.choices {
		if err := c.resolveChoice(p); err != nil {
			return err
		}
		c.model.Choices = append(c.model.Choices, p.choice)
	}

	names := map[string]string{}
	for _, cmd := range c.model.Commands {
		names[cmd.TypeName] = cmd.Attributes.Name
		if !cmd.HasSchema() {
			for _, g := range c.model.Groups {
				for _, v := range g.Variants {
					if v.Type == cmd.TypeName {
						return fmt.Errorf("%s: subcommand `%s` refers to %s, which has no schema (autocomplete or partial)", v.Position, v.Name, cmd.TypeName)
					}
				}
			}
		}
	}
	for _, g := range c.model.Groups {
		names[g.TypeName] = g.Attributes.Name
	}
	for _, g := range c.model.Groups {
		for _, v := range g.Variants {
			if name, ok := names[v.Type]; ok && name != "" && name != v.Name {
				logger.Warn("subcommand name differs from the command name of its type",
					"group", g.TypeName, "subcommand", v.Name, "type", v.Type, "command", name)
			}
		}
	}
	return nil
}

// qualify renders a named type for the generated file, recording the import
// of a qualified type. The runtime and discordgo packages keep their own names.
func (c *collector) qualify(expr ast.Expr) (string, error) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return typeName(expr), nil
	}
	x, ok := sel.X.(*ast.Ident)
	if !ok {
		return "", parsers.Errorf(expr.Pos(), "unsupported type %s", types.ExprString(expr))
	}
	p, ok := c.imports[x.Name]
	if !ok {
		return "", parsers.Errorf(expr.Pos(), "unknown package %s", x.Name)
	}
	switch p {
	case model.RuntimeImportPath:
		return "interactions." + sel.Sel.Name, nil
	case model.DiscordgoImportPath:
		c.model.AddImport("", p)
		return "discordgo." + sel.Sel.Name, nil
	}
	name := ""
	if x.Name != assumedName(p) {
		name = x.Name
	}
	c.model.AddImport(name, p)
	return x.Name + "." + sel.Sel.Name, nil
}

// assumedName is the package name implied by an import path: the last
// element without a major version, a "go-" prefix or a dotted suffix.
func assumedName(importPath string) string {
	elems := strings.Split(importPath, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	name = strings.TrimPrefix(name, "go-")
	if i := strings.IndexAny(name, ".-"); i > 0 {
		name = name[:i]
	}
	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

func typeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return x.Name + "." + t.Sel.Name
		}
	}
	return ""
}
