package base

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"gopkg.in/yaml.v3"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Stdout receives streamed output that must not be line-buffered.
	Stdout io.Writer
}

// NewCommand returns a new instance of a base.Command type.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log:    log,
		UI:     ui,
		Stdout: os.Stdout,
	}
}

// Output writes v to the UI as JSON or YAML.
func (c *Command) Output(format string, v any) error {
	var (
		out []byte
		err error
	)
	switch strings.ToLower(format) {
	case "", "json":
		out, err = json.MarshalIndent(v, "", "  ")
	case "yaml":
		out, err = marshalYAML(v)
	default:
		return fmt.Errorf("unsupported format %q (valid: json, yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	c.UI.Output(strings.TrimRight(string(out), "\n"))
	return nil
}

// marshalYAML goes through JSON first so YAML keys match the API field
// names.
func marshalYAML(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
