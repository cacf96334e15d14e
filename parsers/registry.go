package parsers

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/arran4/go-interactions/model"
)

// Parser builds the data model of the package in dir of fsys.
type Parser interface {
	Parse(fsys fs.FS, dir string) (*model.DataModel, error)
}

var parsers = make(map[string]Parser)

func Register(name string, p Parser) {
	parsers[name] = p
}

func Get(name string) (Parser, error) {
	if p, ok := parsers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("parser %s not found", name)
}

// Names lists the registered parsers.
func Names() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
