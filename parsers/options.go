package parsers

// DefaultParser is the parser used when none is named.
const DefaultParser = "commentv1"

// ParseOptions controls which packages are parsed.
type ParseOptions struct {
	// Parser is the registered parser name, DefaultParser when empty.
	Parser string
	// SearchPaths are directories relative to the root. The root itself when empty.
	SearchPaths []string
	// Recursive also parses the packages below each search path.
	Recursive bool
}

// ParserName returns the parser to use.
func (o *ParseOptions) ParserName() string {
	if o == nil || o.Parser == "" {
		return DefaultParser
	}
	return o.Parser
}
