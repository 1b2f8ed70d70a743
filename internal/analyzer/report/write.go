package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/z1z0v1c/dockerhub-analyzer/internal/analyzer/config"
)

var (
	colorHeader  = lipgloss.Color("#00ccff")
	colorWarning = lipgloss.Color("#fbbf24")
)

// Write renders res to w in the given output format.
func Write(w io.Writer, format string, res *Result, opts Options) error {
	switch format {
	case config.FormatConsole, "":
		return writeConsole(w, res, opts)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeConsole styles headers when w is a terminal and writes plain text otherwise.
func writeConsole(w io.Writer, res *Result, opts Options) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Foreground(colorHeader)
	warning := r.NewStyle().Foreground(colorWarning)

	var b strings.Builder
	b.WriteString("\n")

	for _, line := range Lines(res, opts) {
		switch {
		case strings.HasPrefix(line, "==="):
			line = header.Render(line)
		case line == LayersUnavailable:
			line = warning.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())

	return err
}
