// Package export serializes extraction results for download.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

// Format is a download format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown export format %q: must be json or csv", s)
	}
}

// Filename returns bio_extraction_<YYYY-MM-DD>.<ext> for the given day.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("bio_extraction_%s.%s", now.Format(time.DateOnly), f)
}

// Marshal renders r in the requested format.
func Marshal(r *api.ExtractionResult, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(r)
	case FormatCSV:
		return []byte(CSV(r)), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", f)
	}
}

// JSON pretty-prints the full result with two-space indentation.
func JSON(r *api.ExtractionResult) ([]byte, error) {
	out := *r
	if out.Entities == nil {
		out.Entities = []api.Entity{}
	}
	if out.Relations == nil {
		out.Relations = []api.Relation{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling extraction result: %w", err)
	}
	return append(data, '\n'), nil
}

// CSV writes two tables: entities, a blank line, then relationships. Data
// fields are quoted and embedded quotes are doubled.
func CSV(r *api.ExtractionResult) string {
	var b strings.Builder
	b.WriteString("Name,Type,Description\n")
	for _, e := range r.Entities {
		writeRow(&b, e.Name, e.Type, e.Description)
	}
	b.WriteString("\n")
	b.WriteString("Source,Target,Type,Description,Evidence\n")
	for _, rel := range r.Relations {
		writeRow(&b, rel.Source, rel.Target, rel.Type, rel.Description, rel.Evidence)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Quote(f))
	}
	b.WriteByte('\n')
}

// Quote wraps s in double quotes, doubling any quotes inside it.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
