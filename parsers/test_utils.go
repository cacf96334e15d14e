package parsers

import (
	"io/fs"
	"path"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/tools/txtar"
)

// Archive members describing a test case rather than the package under test.
const (
	// TestsFile lists the handlers to run against the archive, one per line.
	TestsFile = "tests.txt"
	// WantFile holds the expected output.
	WantFile = "want.txt"
)

// TxtarHandler checks one kind of expectation against an archive.
type TxtarHandler func(t *testing.T, archive *txtar.Archive)

// ArchiveFile returns the content of the member called name.
func ArchiveFile(archive *txtar.Archive, name string) (string, bool) {
	for _, f := range archive.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}

// ArchiveKinds returns the handler names listed in the archive's tests.txt.
func ArchiveKinds(archive *txtar.Archive) []string {
	data, _ := ArchiveFile(archive, TestsFile)
	return strings.Fields(data)
}

// ArchiveWant returns want.txt with surrounding blank space removed.
func ArchiveWant(archive *txtar.Archive) string {
	data, _ := ArchiveFile(archive, WantFile)
	return strings.TrimSpace(data)
}

// ArchiveFS returns the package members of archive as a file system.
func ArchiveFS(archive *txtar.Archive) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, f := range archive.Files {
		if f.Name == TestsFile || f.Name == WantFile {
			continue
		}
		fsys[f.Name] = &fstest.MapFile{Data: f.Data}
	}
	return fsys
}

// RunTxtarTests runs each .txtar archive in dir through the handlers named
// by its tests.txt. An archive without tests.txt, or naming an unknown
// handler, fails.
func RunTxtarTests(t *testing.T, fsys fs.FS, dir string, handlers map[string]TxtarHandler) {
	t.Helper()
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		t.Fatalf("failed to read directory %s: %v", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txtar" {
			continue
		}
		t.Run(strings.TrimSuffix(entry.Name(), ".txtar"), func(t *testing.T) {
			content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
			if err != nil {
				t.Fatalf("failed to read %s: %v", entry.Name(), err)
			}
			archive := txtar.Parse(content)
			kinds := ArchiveKinds(archive)
			if len(kinds) == 0 {
				t.Fatalf("%s does not list any test in %s", entry.Name(), TestsFile)
			}
			for _, kind := range kinds {
				handler, ok := handlers[kind]
				if !ok {
					t.Errorf("unknown test kind %q", kind)
					continue
				}
				t.Run(kind, func(t *testing.T) {
					handler(t, archive)
				})
			}
		})
	}
}
