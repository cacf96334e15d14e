// Package generator renders interactions_gen.go files from parsed packages and
// implements the interactgen subcommands.
package generator

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/arran4/go-interactions/internal/logger"
	"github.com/arran4/go-interactions/model"
	"github.com/arran4/go-interactions/parsers"
	"github.com/arran4/go-interactions/parsers/commentv1"
)

//go:embed templates/*.gotmpl
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"quote":         strconv.Quote,
	"join":          strings.Join,
	"commandSchema": commandSchema,
	"groupSchema":   groupSchema,
}).ParseFS(templatesFS, "templates/*.gotmpl"))

// FileWriter interface allows mocking file system writes
type FileWriter interface {
	WriteFile(path string, content []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
}

// OSFileWriter implements FileWriter using os package
type OSFileWriter struct{}

func (w *OSFileWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	return os.WriteFile(path, content, perm)
}

func (w *OSFileWriter) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (w *OSFileWriter) Remove(path string) error {
	return os.Remove(path)
}

// CollectingFileWriter keeps written files in memory.
type CollectingFileWriter struct {
	Files   map[string][]byte
	Removed []string
}

func (w *CollectingFileWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if w.Files == nil {
		w.Files = map[string][]byte{}
	}
	w.Files[filepath.ToSlash(path)] = content
	return nil
}

func (w *CollectingFileWriter) MkdirAll(path string, perm os.FileMode) error {
	return nil
}

func (w *CollectingFileWriter) Remove(path string) error {
	w.Removed = append(w.Removed, filepath.ToSlash(path))
	return nil
}

// ErrNoPackages is returned when no Go package was found.
var ErrNoPackages = errors.New("no Go packages found")

// schema is the data of the shared tail of CreateCommand.
type schema struct {
	Attributes  model.TypeAttribute
	NameConst   string
	Description string
	Group       bool
}

func commandSchema(c *model.Command) schema {
	return schema{Attributes: c.Attributes, NameConst: c.NameConst(), Description: c.Description}
}

func groupSchema(g *model.Group) schema {
	return schema{Attributes: g.Attributes, NameConst: g.NameConst(), Description: g.Description, Group: true}
}

// Render returns the formatted generated file of d.
func Render(d *model.DataModel) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "interactions.go.gotmpl", d); err != nil {
		return nil, fmt.Errorf("failed to execute template for %s: %w", d.Dir, err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code for %s: %w\n%s", d.Dir, err, buf.String())
	}
	return formatted, nil
}

// Packages parses the packages selected by opts in fsys. Packages without
// annotations are included so stale generated files can be found.
func Packages(fsys fs.FS, opts *parsers.ParseOptions) ([]*model.DataModel, error) {
	p, err := parsers.Get(opts.ParserName())
	if err != nil {
		return nil, err
	}
	dirs, err := packageDirs(fsys, opts)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, ErrNoPackages
	}
	var out []*model.DataModel
	for _, dir := range dirs {
		d, err := p.Parse(fsys, dir)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed package", "dir", dir, "commands", len(d.Commands), "groups", len(d.Groups), "choices", len(d.Choices), "modals", len(d.Modals))
		out = append(out, d)
	}
	return out, nil
}

// packageDirs lists the directories holding Go files. Hidden, underscore,
// testdata and vendor directories and nested modules are skipped.
func packageDirs(fsys fs.FS, opts *parsers.ParseOptions) ([]string, error) {
	roots := []string{"."}
	recursive := false
	if opts != nil {
		if len(opts.SearchPaths) > 0 {
			roots = opts.SearchPaths
		}
		recursive = opts.Recursive
	}

	seen := map[string]bool{}
	var dirs []string
	add := func(dir string) error {
		if seen[dir] {
			return nil
		}
		ok, err := hasGoFiles(fsys, dir)
		if err != nil || !ok {
			return err
		}
		seen[dir] = true
		dirs = append(dirs, dir)
		return nil
	}

	for _, root := range roots {
		root = path.Clean(filepath.ToSlash(root))
		if !recursive {
			if err := add(root); err != nil {
				return nil, err
			}
			continue
		}
		err := fs.WalkDir(fsys, root, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() {
				return nil
			}
			if p != root {
				name := entry.Name()
				if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor" {
					return fs.SkipDir
				}
				if _, err := fs.Stat(fsys, path.Join(p, "go.mod")); err == nil {
					return fs.SkipDir
				}
			}
			return add(p)
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

func hasGoFiles(fsys fs.FS, dir string) (bool, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".go") && !strings.HasSuffix(e.Name(), "_test.go") {
			return true, nil
		}
	}
	return false, nil
}

// Generate writes the generated files of the packages below dir.
func Generate(dir string, opts *parsers.ParseOptions) ([]string, error) {
	return GenerateWithFS(os.DirFS(dir), &OSFileWriter{}, dir, opts)
}

// GenerateWithFS generates code using provided FS and Writer. root is the
// directory fsys is rooted at. It returns the written files.
func GenerateWithFS(fsys fs.FS, writer FileWriter, root string, opts *parsers.ParseOptions) ([]string, error) {
	models, err := Packages(fsys, opts)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, d := range models {
		target := generatedPath(root, d.Dir)
		if d.Empty() {
			if _, err := fs.Stat(fsys, path.Join(d.Dir, commentv1.GeneratedFileName)); err == nil {
				if err := writer.Remove(target); err != nil {
					return written, fmt.Errorf("failed to remove %s: %w", target, err)
				}
				logger.Info("removed stale generated file", "file", target)
			}
			continue
		}
		content, err := Render(d)
		if err != nil {
			return written, err
		}
		if err := writer.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
		}
		if err := writer.WriteFile(target, content, 0644); err != nil {
			return written, fmt.Errorf("failed to create file %s: %w", target, err)
		}
		logger.Debug("generated", "file", target)
		written = append(written, target)
	}
	if len(written) == 0 {
		logger.Warn("no annotated declarations found", "dir", root)
	}
	return written, nil
}

func generatedPath(root, dir string) string {
	return filepath.Join(root, filepath.FromSlash(dir), commentv1.GeneratedFileName)
}
