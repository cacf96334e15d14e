package model

import (
	"fmt"
	"go/token"
	"sort"
	"strconv"
	"strings"
)

// RuntimeImportPath is the import path of the runtime package targeted by generated code.
const RuntimeImportPath = "github.com/arran4/go-interactions"

// DiscordgoImportPath is the import path of the Discord client library.
const DiscordgoImportPath = "github.com/bwmarrin/discordgo"

// DataModel is the parsed content of one package.
type DataModel struct {
	// FileSet is the token.FileSet used for parsing.
	FileSet *token.FileSet
	// PackageName is the name of the package the declarations belong to.
	PackageName string
	// ImportPath is the import path of the package, empty when no go.mod was found.
	ImportPath string
	// Dir is the directory of the package relative to the parsed file system.
	Dir string
	// Commands are the `//interactions:command` structs in declaration order.
	Commands []*Command
	// Groups are the `//interactions:group` structs.
	Groups []*Group
	// Choices are the `//interactions:choice` types.
	Choices []*Choice
	// Modals are the `//interactions:modal` structs.
	Modals []*Modal
	// Imports are the packages referenced by qualified option types, sorted by path.
	Imports []Import
}

// Import is an import of the generated file.
type Import struct {
	// Name is set when the source file imports the package under another name.
	Name string
	Path string
}

// AddImport records an import unless its path is already present.
func (d *DataModel) AddImport(name, path string) {
	for _, imp := range d.Imports {
		if imp.Path == path {
			return
		}
	}
	d.Imports = append(d.Imports, Import{Name: name, Path: path})
	sort.Slice(d.Imports, func(i, j int) bool {
		return d.Imports[i].Path < d.Imports[j].Path
	})
}

// ExtraImports returns the imports besides the runtime and discordgo packages.
func (d *DataModel) ExtraImports() []Import {
	var out []Import
	for _, imp := range d.Imports {
		if imp.Path != RuntimeImportPath && imp.Path != DiscordgoImportPath {
			out = append(out, imp)
		}
	}
	return out
}

// Empty reports whether the package has no annotated declarations.
func (d *DataModel) Empty() bool {
	return len(d.Commands) == 0 && len(d.Groups) == 0 && len(d.Choices) == 0 && len(d.Modals) == 0
}

// NeedsDiscordgo reports whether the generated file refers to the discordgo package.
func (d *DataModel) NeedsDiscordgo() bool {
	if len(d.Choices) > 0 || len(d.Modals) > 0 {
		return true
	}
	for _, imp := range d.Imports {
		if imp.Path == DiscordgoImportPath {
			return true
		}
	}
	for _, g := range d.Groups {
		if g.HasSchema() {
			return true
		}
	}
	for _, c := range d.Commands {
		if c.HasSchema() {
			return true
		}
		for _, f := range c.Fields {
			if len(f.Attributes.ChannelTypes) > 0 {
				return true
			}
		}
	}
	return false
}

// FieldKind classifies a struct field by its declared type.
type FieldKind int

const (
	// Required fields have a plain type.
	Required FieldKind = iota
	// Optional fields are declared as *T.
	Optional
	// Autocomplete fields are declared as interactions.AutocompleteValue[T].
	Autocomplete
)

func (k FieldKind) String() string {
	switch k {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Autocomplete:
		return "autocomplete"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// MarshalText renders the kind by name in list output.
func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// NumberLiteral is an integer or floating point literal from a directive.
type NumberLiteral struct {
	Integer bool   `json:"integer" yaml:"integer"`
	Literal string `json:"literal" yaml:"literal"`
}

// Expr returns the runtime expression of the literal as an option bound.
func (n *NumberLiteral) Expr() string {
	if n.Integer {
		return "interactions.IntegerValue(" + n.Literal + ")"
	}
	return "interactions.NumberValue(" + n.Literal + ")"
}

// TypeAttribute holds the arguments of a `command` or `group` directive.
type TypeAttribute struct {
	// Name is the command name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// NameLocalizations is a function returning interactions.NameLocalizations.
	NameLocalizations string `json:"name_localizations,omitempty" yaml:"name_localizations,omitempty"`
	// Desc is the explicit description.
	Desc string `json:"desc,omitempty" yaml:"desc,omitempty"`
	// DescLocalizations is a function returning interactions.DescLocalizations.
	DescLocalizations string `json:"desc_localizations,omitempty" yaml:"desc_localizations,omitempty"`
	// DefaultPermissions is a function returning the default member permissions as an int64.
	DefaultPermissions string `json:"default_permissions,omitempty" yaml:"default_permissions,omitempty"`
	DMPermission       *bool  `json:"dm_permission,omitempty" yaml:"dm_permission,omitempty"`
	NSFW               *bool  `json:"nsfw,omitempty" yaml:"nsfw,omitempty"`
	// Autocomplete marks a model parsed from autocomplete interactions.
	Autocomplete bool `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	// Partial marks a model that only parses the options it declares.
	Partial bool `json:"partial,omitempty" yaml:"partial,omitempty"`
	// Contexts are discordgo.InteractionContextType constant names.
	Contexts []string `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	// IntegrationTypes are discordgo.ApplicationIntegrationType constant names.
	IntegrationTypes []string `json:"integration_types,omitempty" yaml:"integration_types,omitempty"`
}

// FieldAttribute holds the arguments of an `option` directive.
type FieldAttribute struct {
	Rename            string `json:"rename,omitempty" yaml:"rename,omitempty"`
	NameLocalizations string `json:"name_localizations,omitempty" yaml:"name_localizations,omitempty"`
	Desc              string `json:"desc,omitempty" yaml:"desc,omitempty"`
	DescLocalizations string `json:"desc_localizations,omitempty" yaml:"desc_localizations,omitempty"`
	Autocomplete      bool   `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	// ChannelTypes are discordgo.ChannelType constant names.
	ChannelTypes []string       `json:"channel_types,omitempty" yaml:"channel_types,omitempty"`
	MaxValue     *NumberLiteral `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	MinValue     *NumberLiteral `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxLength    *int           `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MinLength    *int           `json:"min_length,omitempty" yaml:"min_length,omitempty"`
}

// Command is a struct whose fields are command options.
type Command struct {
	// TypeName is the name of the struct.
	TypeName string `json:"type" yaml:"type"`
	// Position is where the struct is declared.
	Position token.Position `json:"-" yaml:"-"`
	// Attributes are the arguments of the `command` directive.
	Attributes TypeAttribute `json:"attributes" yaml:"attributes"`
	// Description is the resolved static description, empty when DescLocalizations is used.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Fields are the options in declaration order.
	Fields []*StructField `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// HasSchema reports whether a CreateCommand method is generated.
func (c *Command) HasSchema() bool {
	return !c.Attributes.Autocomplete && !c.Attributes.Partial
}

// SkipUnknown reports whether unknown options are ignored while parsing.
func (c *Command) SkipUnknown() bool {
	return c.Attributes.Autocomplete || c.Attributes.Partial
}

// NameConst is the name of the generated command name constant.
func (c *Command) NameConst() string {
	return c.TypeName + "Name"
}

// RequiredFields returns the fields that must be present in the input.
func (c *Command) RequiredFields() []*StructField {
	var fields []*StructField
	for _, f := range c.Fields {
		if f.Kind == Required {
			fields = append(fields, f)
		}
	}
	return fields
}

// StructField is a field of a command struct.
type StructField struct {
	// Ident is the Go field name.
	Ident string `json:"ident" yaml:"ident"`
	// Type is the declared type with the optional or autocomplete wrapper removed.
	Type string `json:"type" yaml:"type"`
	// Position is where the field is declared.
	Position token.Position `json:"-" yaml:"-"`
	Kind     FieldKind      `json:"kind" yaml:"kind"`
	// OptionName is the rename argument or the snake cased field name.
	OptionName string `json:"option" yaml:"option"`
	// Description is the resolved static description, empty when DescLocalizations is used.
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Attributes  FieldAttribute `json:"attributes" yaml:"attributes"`
	// SeenVar is the local variable tracking a required field while parsing.
	SeenVar string `json:"-" yaml:"-"`
}

// IsRequired reports whether the option is required.
func (f *StructField) IsRequired() bool {
	return f.Kind == Required
}

// IsOptional reports whether the field is a pointer.
func (f *StructField) IsOptional() bool {
	return f.Kind == Optional
}

// OptionDataExpr returns the interactions.CommandOptionData literal of the field.
func (f *StructField) OptionDataExpr() string {
	a := f.Attributes
	var parts []string
	if len(a.ChannelTypes) > 0 {
		parts = append(parts, "ChannelTypes: []discordgo.ChannelType{"+strings.Join(a.ChannelTypes, ", ")+"}")
	}
	if a.MaxValue != nil {
		parts = append(parts, "MaxValue: "+a.MaxValue.Expr())
	}
	if a.MinValue != nil {
		parts = append(parts, "MinValue: "+a.MinValue.Expr())
	}
	if a.MaxLength != nil {
		parts = append(parts, "MaxLength: interactions.Ptr("+strconv.Itoa(*a.MaxLength)+")")
	}
	if a.MinLength != nil {
		parts = append(parts, "MinLength: interactions.Ptr("+strconv.Itoa(*a.MinLength)+")")
	}
	return "interactions.CommandOptionData{" + strings.Join(parts, ", ") + "}"
}

// Group is a struct whose fields are subcommands, one of which is set after parsing.
type Group struct {
	TypeName    string         `json:"type" yaml:"type"`
	Position    token.Position `json:"-" yaml:"-"`
	Attributes  TypeAttribute  `json:"attributes" yaml:"attributes"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Variants    []*Variant     `json:"variants" yaml:"variants"`
}

// HasSchema reports whether a CreateCommand method is generated.
func (g *Group) HasSchema() bool {
	return true
}

// NameConst is the name of the generated command name constant.
func (g *Group) NameConst() string {
	return g.TypeName + "Name"
}

// Variant is a subcommand field of a group.
type Variant struct {
	// Ident is the Go field name.
	Ident string `json:"ident" yaml:"ident"`
	// Type is the pointed to command type.
	Type     string         `json:"type" yaml:"type"`
	Position token.Position `json:"-" yaml:"-"`
	// Name is the subcommand name matched while parsing.
	Name string `json:"name" yaml:"name"`
}

// ChoiceKind is the literal kind shared by the values of a choice type.
type ChoiceKind int

const (
	StringChoice ChoiceKind = iota
	IntegerChoice
	NumberChoice
)

func (k ChoiceKind) String() string {
	switch k {
	case StringChoice:
		return "string"
	case IntegerChoice:
		return "integer"
	case NumberChoice:
		return "float"
	}
	return fmt.Sprintf("ChoiceKind(%d)", int(k))
}

// MarshalText renders the kind by name in list output.
func (k ChoiceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// BaseType is the Go type values of this kind are parsed into.
func (k ChoiceKind) BaseType() string {
	switch k {
	case IntegerChoice:
		return "int64"
	case NumberChoice:
		return "float64"
	}
	return "string"
}

// OptionType is the discordgo option type constant of this kind.
func (k ChoiceKind) OptionType() string {
	switch k {
	case IntegerChoice:
		return "discordgo.ApplicationCommandOptionInteger"
	case NumberChoice:
		return "discordgo.ApplicationCommandOptionNumber"
	}
	return "discordgo.ApplicationCommandOptionString"
}

// Choice is a named type whose constants are the option choices.
type Choice struct {
	TypeName string           `json:"type" yaml:"type"`
	Position token.Position   `json:"-" yaml:"-"`
	Kind     ChoiceKind       `json:"kind" yaml:"kind"`
	Variants []*ChoiceVariant `json:"variants" yaml:"variants"`
}

// IsNumber reports whether values are compared as floats.
func (c *Choice) IsNumber() bool {
	return c.Kind == NumberChoice
}

// ChoiceVariant is one constant of a choice type.
type ChoiceVariant struct {
	// Ident is the constant name.
	Ident    string         `json:"ident" yaml:"ident"`
	Position token.Position `json:"-" yaml:"-"`
	// Name is the displayed choice name.
	Name              string `json:"name" yaml:"name"`
	NameLocalizations string `json:"name_localizations,omitempty" yaml:"name_localizations,omitempty"`
	// Literal is the constant value as written.
	Literal string `json:"value" yaml:"value"`
}

// ModalAttribute holds the arguments of a `modal` directive.
type ModalAttribute struct {
	Title    string `json:"title" yaml:"title"`
	CustomID string `json:"custom_id,omitempty" yaml:"custom_id,omitempty"`
}

// ModalFieldAttribute holds the arguments of an `input` directive.
type ModalFieldAttribute struct {
	Label       string `json:"label" yaml:"label"`
	CustomID    string `json:"custom_id,omitempty" yaml:"custom_id,omitempty"`
	Style       string `json:"style" yaml:"style"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	MinLength   *int   `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength   *int   `json:"max_length,omitempty" yaml:"max_length,omitempty"`
}

// Modal is a struct whose fields are text inputs.
type Modal struct {
	TypeName   string         `json:"type" yaml:"type"`
	Position   token.Position `json:"-" yaml:"-"`
	Attributes ModalAttribute `json:"attributes" yaml:"attributes"`
	Fields     []*ModalField  `json:"fields" yaml:"fields"`
}

// CustomIDConst is the name of the generated custom id constant.
func (m *Modal) CustomIDConst() string {
	return m.TypeName + "CustomID"
}

// RequiredFields returns the inputs that must be submitted.
func (m *Modal) RequiredFields() []*ModalField {
	var fields []*ModalField
	for _, f := range m.Fields {
		if f.Kind == Required {
			fields = append(fields, f)
		}
	}
	return fields
}

// ModalField is a text input of a modal.
type ModalField struct {
	Ident      string              `json:"ident" yaml:"ident"`
	Position   token.Position      `json:"-" yaml:"-"`
	Kind       FieldKind           `json:"kind" yaml:"kind"`
	CustomID   string              `json:"custom_id" yaml:"custom_id"`
	Attributes ModalFieldAttribute `json:"attributes" yaml:"attributes"`
	SeenVar    string              `json:"-" yaml:"-"`
}

// IsRequired reports whether the input is required.
func (f *ModalField) IsRequired() bool {
	return f.Kind == Required
}

// StyleConst is the discordgo text input style constant of the field.
func (f *ModalField) StyleConst() string {
	if f.Attributes.Style == "paragraph" {
		return "discordgo.TextInputParagraph"
	}
	return "discordgo.TextInputShort"
}
