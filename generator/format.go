package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arran4/go-interactions/internal/logger"
	"github.com/arran4/go-interactions/parsers"
	"github.com/arran4/go-interactions/parsers/commentv1"
)

// Format rewrites the directives below dir with their arguments in canonical
// order and spacing. Without inplace the files are only reported.
func Format(dir string, opts *parsers.ParseOptions, inplace bool) ([]string, error) {
	return FormatWithFS(os.DirFS(dir), &OSFileWriter{}, dir, opts, inplace)
}

// FormatWithFS is Format on an arbitrary file system. It returns the files
// whose directives are not formatted.
func FormatWithFS(fsys fs.FS, writer FileWriter, root string, opts *parsers.ParseOptions, inplace bool) ([]string, error) {
	dirs, err := packageDirs(fsys, opts)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, ErrNoPackages
	}

	var changed []string
	for _, dir := range dirs {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".go") || name == commentv1.GeneratedFileName {
				continue
			}
			filename := path.Join(dir, name)
			src, err := fs.ReadFile(fsys, filename)
			if err != nil {
				return nil, err
			}
			out, err := formatFile(filename, src)
			if err != nil {
				return nil, err
			}
			if string(out) == string(src) {
				continue
			}
			target := filepath.Join(root, filepath.FromSlash(filename))
			changed = append(changed, target)
			if !inplace {
				logger.Debug("would format", "file", target)
				continue
			}
			if err := writer.WriteFile(target, out, 0644); err != nil {
				return changed, fmt.Errorf("failed to write %s: %w", target, err)
			}
			logger.Debug("formatted", "file", target)
		}
	}
	return changed, nil
}

type fileEdit struct {
	start int
	end   int
	text  string
}

// formatFile returns src with every directive rewritten in canonical form.
func formatFile(filename string, src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution|parser.ParseComments)
	if err != nil {
		return nil, err
	}
	onType := typeComments(f)

	var edits []fileEdit
	for _, g := range f.Comments {
		for _, c := range g.List {
			d, ok := commentv1.ParseDirective(c)
			if !ok || commentv1.KeysFor(d.Kind, true) == nil {
				continue
			}
			keys := commentv1.KeysFor(d.Kind, onType[c])
			a, err := parsers.ParseNamedAttrs(d.Args, d.Pos, keys)
			if err != nil {
				return nil, parsers.Locate(fset, err)
			}
			text := commentv1.DirectivePrefix + d.Kind
			if canonical := a.Canonical(keys); canonical != "" {
				text += " " + canonical
			}
			if text == c.Text {
				continue
			}
			edits = append(edits, fileEdit{
				start: fset.Position(c.Slash).Offset,
				end:   fset.Position(c.End()).Offset,
				text:  text,
			})
		}
	}

	// Apply from the end so earlier offsets stay valid.
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})
	out := src
	for _, edit := range edits {
		if edit.start < 0 || edit.end > len(out) || edit.start > edit.end {
			return nil, fmt.Errorf("invalid offsets for %s: %d-%d", filename, edit.start, edit.end)
		}
		var buf []byte
		buf = append(buf, out[:edit.start]...)
		buf = append(buf, edit.text...)
		buf = append(buf, out[edit.end:]...)
		out = buf
	}
	return out, nil
}

// typeComments marks the comments documenting type declarations, which tells
// a choice type directive from a choice value directive.
func typeComments(f *ast.File) map[*ast.Comment]bool {
	marked := map[*ast.Comment]bool{}
	mark := func(g *ast.CommentGroup) {
		if g == nil {
			return
		}
		for _, c := range g.List {
			marked[c] = true
		}
	}
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		mark(gen.Doc)
		for _, spec := range gen.Specs {
			mark(spec.(*ast.TypeSpec).Doc)
		}
	}
	return marked
}
