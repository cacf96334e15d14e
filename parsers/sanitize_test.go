package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalName(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{nil, "v"},
		{[]string{"seen", "Text"}, "seenText"},
		{[]string{"seen", "MaxResults"}, "seenMaxResults"},
		{[]string{"hello-world"}, "helloWorld"},
		{[]string{"hello world"}, "helloWorld"},
		{[]string{"foo.bar"}, "fooBar"},
		{[]string{"123test"}, "v123Test"},
		{[]string{"---"}, "v"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LocalName(tt.parts...), "%q", tt.parts)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"JSONData", "json_data"},
		{"MyJSONData", "my_json_data"},
		{"SimpleTest", "simple_test"},
		{"UserID", "user_id"},
		{"MaxResults", "max_results"},
		{"Text", "text"},
		{"Field2", "field_2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSnakeCase(tt.input))
		})
	}
}

func TestLocals(t *testing.T) {
	l := NewLocals()
	assert.Equal(t, "seenText", l.Name("seen", "Text"))
	assert.Equal(t, "seenText2", l.Name("seen", "Text"))
	assert.Equal(t, "data2", l.Name("data"))
	assert.Equal(t, "desc2", l.Name("desc"))
	assert.Equal(t, "count", l.Name("count"))
}
