package projection

import (
	"fmt"

	"github.com/flavono123/shaper/internal/field"
)

// Format selects how the projection is rendered.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSchema Format = "schema"
)

func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatSchema}
}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown preview format %q", s)
}

func (f Format) Next() Format {
	formats := Formats()
	for i, candidate := range formats {
		if candidate == f {
			return formats[(i+1)%len(formats)]
		}
	}
	return FormatJSON
}

// Ext is the file extension used when exporting f.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatSchema:
		return "schema.json"
	default:
		return "json"
	}
}

func (f Format) Title() string {
	switch f {
	case FormatYAML:
		return "YAML"
	case FormatSchema:
		return "JSON Schema"
	default:
		return "JSON"
	}
}

func Render(nodes []field.Node, f Format) (string, error) {
	switch f {
	case FormatJSON:
		return JSON(Project(nodes))
	case FormatYAML:
		return YAML(Project(nodes))
	case FormatSchema:
		return JSONSchemaText(nodes)
	}
	return "", fmt.Errorf("unknown preview format %q", f)
}
