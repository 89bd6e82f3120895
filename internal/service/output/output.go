package output

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format represents command output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates format values. Empty input defaults to table.
func ParseFormat(v string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(v)))
	switch format {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	}
	return "", fmt.Errorf("unsupported format %q", v)
}

// Envelope is the machine-output payload. Meta always carries request_id,
// generated_at, profile, and source.
type Envelope struct {
	Meta     map[string]any `json:"meta" yaml:"meta"`
	Data     any            `json:"data" yaml:"data"`
	Warnings []string       `json:"warnings" yaml:"warnings"`
	Error    map[string]any `json:"error,omitempty" yaml:"error,omitempty"`
}

// BuildEnvelope constructs a response envelope around one command's data.
func BuildEnvelope(profile string, data any, warnings []string, errPayload map[string]any) Envelope {
	if warnings == nil {
		warnings = []string{}
	}
	return Envelope{
		Meta: map[string]any{
			"request_id":   requestID(),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"profile":      profile,
			"source":       "tabelog.com",
		},
		Data:     data,
		Warnings: warnings,
		Error:    errPayload,
	}
}

func requestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "req_fallback"
	}
	return "req_" + hex.EncodeToString(buf)
}

// RenderPayload encodes the envelope as json or yaml.
func RenderPayload(payload Envelope, format Format) (string, error) {
	var (
		raw []byte
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = json.MarshalIndent(payload, "", "  ")
	case FormatYAML:
		raw, err = yaml.Marshal(payload)
	default:
		return "", fmt.Errorf("render payload only supports json/yaml")
	}
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", format, err)
	}
	return string(raw), nil
}

// WriteOutput prints the text to the writer and, when a path is given,
// mirrors it into that file.
func WriteOutput(w io.Writer, text string, outputPath string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// RenderTable renders a plain text table with space-aligned columns. Widths
// count runes, so wide CJK glyphs shift alignment slightly; the table is a
// terminal convenience, not a machine format.
func RenderTable(title string, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len([]rune(header))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(cells)-1 && i < len(widths) {
				b.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))))
			}
		}
		b.WriteByte('\n')
	}
	if len(headers) > 0 {
		writeRow(headers)
	}
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}
