package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/arran4/go-interactions/internal/stringdiff"
	"github.com/arran4/go-interactions/parsers"
	"github.com/arran4/go-interactions/parsers/commentv1"
)

// StaleFile is a generated file that does not match its declarations.
type StaleFile struct {
	// Path is relative to the checked root.
	Path string
	// Diff compares the file on disk (left) with the expected content (right).
	Diff string
}

// StaleError is returned by Check when generated files are out of date.
type StaleError struct {
	Files []StaleFile
}

func (e *StaleError) Error() string {
	paths := make([]string, len(e.Files))
	for i, f := range e.Files {
		paths[i] = f.Path
	}
	return fmt.Sprintf("generated files are out of date: %s (run interactgen generate)", strings.Join(paths, ", "))
}

// CheckOptions controls the diff of stale files.
type CheckOptions struct {
	Context int
	Color   bool
}

// Check reports generated files below dir that generate would change.
func Check(dir string, opts *parsers.ParseOptions, check CheckOptions) error {
	return CheckWithFS(os.DirFS(dir), opts, check)
}

// CheckWithFS is Check on an arbitrary file system.
func CheckWithFS(fsys fs.FS, opts *parsers.ParseOptions, check CheckOptions) error {
	models, err := Packages(fsys, opts)
	if err != nil {
		return err
	}
	var stale []StaleFile
	for _, d := range models {
		name := path.Join(d.Dir, commentv1.GeneratedFileName)
		current, err := fs.ReadFile(fsys, name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		want := ""
		if !d.Empty() {
			content, err := Render(d)
			if err != nil {
				return err
			}
			want = string(content)
		}
		if string(current) == want {
			continue
		}
		stale = append(stale, StaleFile{
			Path: name,
			Diff: stringdiff.Diff(string(current), want, stringdiff.Context(check.Context), stringdiff.Term(check.Color)),
		})
	}
	if len(stale) > 0 {
		return &StaleError{Files: stale}
	}
	return nil
}
