// Package output provides adapters for writing generated fixtures.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultSeparator separates messages in text output.
const DefaultSeparator = "\n---\n"

// Writer writes fixtures to an output destination in one format.
type Writer struct {
	out       io.Writer
	format    string
	separator string
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// An empty format selects text; an empty separator selects DefaultSeparator.
// Returns domain.ErrUnsupportedFormat for an unknown format.
func NewWriterWithOutput(out io.Writer, format, separator string) (*Writer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Writer{out: out, format: format, separator: separator}, nil
}

// WriteFixtures writes the fixtures in the writer's format.
//
// Text output is the bare messages joined by the separator with a trailing newline.
// JSON and YAML output is a list of {type, options, message} records.
func (w *Writer) WriteFixtures(fixtures []domain.Fixture) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if fixtures == nil {
			fixtures = []domain.Fixture{}
		}
		return enc.Encode(fixtures)
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(fixtures); err != nil {
			return err
		}
		return enc.Close()
	default:
		return w.writeText(fixtures)
	}
}

func (w *Writer) writeText(fixtures []domain.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}
	messages := make([]string, len(fixtures))
	for i, f := range fixtures {
		messages[i] = f.Message
	}
	_, err := fmt.Fprintln(w.out, strings.Join(messages, w.separator))
	return err
}
