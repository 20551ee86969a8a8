package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/homespun/homespun/internal/snapshot"
	"github.com/homespun/homespun/internal/ui/styles"
)

// Format selects how a Formatter writes values.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json or yaml, case-insensitively. Empty input
// means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
	theme  *styles.Theme
	width  int
}

// Option configures a Formatter.
type Option func(*Formatter)

func WithFormat(f Format) Option {
	return func(fm *Formatter) { fm.format = f }
}

// WithTheme sets the table colours. Without one, tables are plain.
func WithTheme(t *styles.Theme) Option {
	return func(fm *Formatter) { fm.theme = t }
}

func WithWidth(w int) Option {
	return func(fm *Formatter) {
		if w > 0 {
			fm.width = w
		}
	}
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, opts ...Option) *Formatter {
	f := &Formatter{
		writer: writer,
		format: FormatTable,
		width:  DefaultWidth,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format reports the output format in use.
func (f *Formatter) Format() Format {
	return f.format
}

func (f *Formatter) write(v any, table func() string) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		_, err := fmt.Fprintln(f.writer, table())
		return err
	}
}

func (f *Formatter) FormatSummary(s SummaryDTO) error {
	return f.write(s, func() string { return RenderSummary(s, f.theme, f.width) })
}

func (f *Formatter) FormatProjectGroups(groups []ProjectGroupDTO) error {
	return f.write(groups, func() string { return RenderProjectGroups(groups, f.theme, f.width) })
}

func (f *Formatter) FormatStatusGroups(groups []StatusGroupDTO) error {
	return f.write(groups, func() string { return RenderStatusGroups(groups, f.theme, f.width) })
}

func (f *Formatter) FormatContainerGroups(groups []ContainerGroupDTO) error {
	return f.write(groups, func() string { return RenderContainerGroups(groups, f.theme, f.width) })
}

// FormatImportResult formats the outcome of a snapshot import.
func (f *Formatter) FormatImportResult(r snapshot.Result) error {
	dto := FromImportResult(r)
	return f.write(dto, func() string { return RenderImportResult(dto, f.theme) })
}

// FormatSnapshot writes the whole dashboard: summary, project groups and
// containers. Structured formats carry the status grouping as well.
func (f *Formatter) FormatSnapshot(s SnapshotDTO) error {
	return f.write(s, func() string {
		return strings.Join([]string{
			RenderSummary(s.Summary, f.theme, f.width),
			RenderProjectGroups(s.ByProject, f.theme, f.width),
			RenderContainerGroups(s.Containers, f.theme, f.width),
		}, "\n\n")
	})
}
