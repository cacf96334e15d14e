package generator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arran4/go-interactions/model"
	"gopkg.in/yaml.v3"
)

// Output formats of List.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Summary counts the declarations of the parsed packages.
type Summary struct {
	Packages int
	Commands int
	Groups   int
	Choices  int
	Modals   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d packages: %d commands, %d groups, %d choices, %d modals", s.Packages, s.Commands, s.Groups, s.Choices, s.Modals)
}

// Validate counts the declarations of packages parsed without error.
func Validate(models []*model.DataModel) Summary {
	var s Summary
	for _, d := range models {
		if d.Empty() {
			continue
		}
		s.Packages++
		s.Commands += len(d.Commands)
		s.Groups += len(d.Groups)
		s.Choices += len(d.Choices)
		s.Modals += len(d.Modals)
	}
	return s
}

type packageListing struct {
	Package  string           `json:"package" yaml:"package"`
	Dir      string           `json:"dir" yaml:"dir"`
	Commands []*model.Command `json:"commands,omitempty" yaml:"commands,omitempty"`
	Groups   []*model.Group   `json:"groups,omitempty" yaml:"groups,omitempty"`
	Choices  []*model.Choice  `json:"choices,omitempty" yaml:"choices,omitempty"`
	Modals   []*model.Modal   `json:"modals,omitempty" yaml:"modals,omitempty"`
}

// List writes the declarations of models to w in the given format.
func List(w io.Writer, models []*model.DataModel, format string) error {
	var listing []packageListing
	for _, d := range models {
		if d.Empty() {
			continue
		}
		name := d.ImportPath
		if name == "" {
			name = d.PackageName
		}
		listing = append(listing, packageListing{
			Package:  name,
			Dir:      d.Dir,
			Commands: d.Commands,
			Groups:   d.Groups,
			Choices:  d.Choices,
			Modals:   d.Modals,
		})
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		return listText(w, listing)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
}

func listText(w io.Writer, listing []packageListing) error {
	var sb strings.Builder
	for _, p := range listing {
		fmt.Fprintf(&sb, "%s (%s)\n", p.Package, p.Dir)
		for _, c := range p.Commands {
			name := c.Attributes.Name
			switch {
			case c.Attributes.Autocomplete:
				name = "autocomplete"
			case c.Attributes.Partial:
				name = "partial"
			}
			fmt.Fprintf(&sb, "  command %s %s\n", c.TypeName, name)
			for _, f := range c.Fields {
				fmt.Fprintf(&sb, "    option %s %s (%s)\n", f.OptionName, f.Type, f.Kind)
			}
		}
		for _, g := range p.Groups {
			fmt.Fprintf(&sb, "  group %s %s\n", g.TypeName, g.Attributes.Name)
			for _, v := range g.Variants {
				fmt.Fprintf(&sb, "    subcommand %s %s\n", v.Name, v.Type)
			}
		}
		for _, c := range p.Choices {
			fmt.Fprintf(&sb, "  choice %s %s\n", c.TypeName, c.Kind)
			for _, v := range c.Variants {
				fmt.Fprintf(&sb, "    %s = %s %q\n", v.Ident, v.Literal, v.Name)
			}
		}
		for _, m := range p.Modals {
			fmt.Fprintf(&sb, "  modal %s %q\n", m.TypeName, m.Attributes.Title)
			for _, f := range m.Fields {
				fmt.Fprintf(&sb, "    input %s %s (%s)\n", f.CustomID, f.Attributes.Style, f.Kind)
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
