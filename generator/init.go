package generator

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// GenerateDirectiveFile is the file written by Init.
const GenerateDirectiveFile = "generate.go"

// GenerateDirective runs interactgen from go generate.
const GenerateDirective = "//go:generate go run github.com/arran4/go-interactions/cmd/interactgen generate"

// ErrExists is returned by Init when the file to write already exists.
var ErrExists = errors.New("file already exists")

// Init writes a generate.go holding the go:generate directive into dir.
func Init(dir string) (string, error) {
	return InitWithFS(os.DirFS(dir), &OSFileWriter{}, dir)
}

// InitWithFS is Init on an arbitrary file system rooted at root.
func InitWithFS(fsys fs.FS, writer FileWriter, root string) (string, error) {
	target := filepath.Join(root, GenerateDirectiveFile)
	if _, err := fs.Stat(fsys, GenerateDirectiveFile); err == nil {
		return "", fmt.Errorf("%s: %w", target, ErrExists)
	}
	name, err := packageName(fsys, root)
	if err != nil {
		return "", err
	}
	content := fmt.Sprintf("package %s\n\n%s\n", name, GenerateDirective)
	if err := writer.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", root, err)
	}
	if err := writer.WriteFile(target, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", target, err)
	}
	return target, nil
}

// packageName reads the package clause of the first Go file, falling back to
// the directory name.
func packageName(fsys fs.FS, root string) (string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", err
		}
		f, err := parser.ParseFile(token.NewFileSet(), name, src, parser.PackageClauseOnly)
		if err != nil {
			return "", err
		}
		return f.Name.Name, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	name := strings.NewReplacer("-", "_", ".", "_").Replace(path.Base(filepath.ToSlash(abs)))
	if !token.IsIdentifier(name) {
		return "main", nil
	}
	return name, nil
}
