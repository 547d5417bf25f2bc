package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/a11y-bridge/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes. Tests swap it.
var Stdout io.Writer = os.Stdout

// HierarchyResult is the output of the `hierarchy` command.
type HierarchyResult struct {
	Activity string          `yaml:"activity,omitempty" json:"activity,omitempty"`
	TS       int64           `yaml:"ts"                 json:"ts"`
	Elements []model.Element `yaml:"elements"           json:"elements"`
}

// HierarchyFlatResult is the output of `hierarchy --flat`.
type HierarchyFlatResult struct {
	Activity string              `yaml:"activity,omitempty" json:"activity,omitempty"`
	TS       int64               `yaml:"ts"                 json:"ts"`
	Elements []model.FlatElement `yaml:"elements"           json:"elements"`
}

// ActionResult reports the outcome of a single remote operation.
type ActionResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
	Path   string `yaml:"path,omitempty"   json:"path,omitempty"`
}

// StatusResult is the output of the `status` command.
type StatusResult struct {
	Address    string `yaml:"address,omitempty"  json:"address,omitempty"`
	Descriptor string `yaml:"descriptor"         json:"descriptor"`
	Connected  bool   `yaml:"connected"          json:"connected"`
	Health     string `yaml:"health,omitempty"   json:"health,omitempty"`
	Activity   string `yaml:"activity,omitempty" json:"activity,omitempty"`
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(Stdout, v, PrettyOutput)
	case FormatYAML:
		return WriteYAML(Stdout, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// WriteJSON serializes v to w as JSON.
// If pretty is true, uses indentation; otherwise single-line.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v to w as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
