package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pastebridge/internal/domain/entities"
)

// Export formats accepted by the export endpoint.
const (
	ExportTXT  = "txt"
	ExportMD   = "md"
	ExportJSON = "json"
)

// ExportFile is a rendered notepad download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// renderExport produces the download body for the requested format.
func renderExport(notepad *entities.Notepad, format string) (*ExportFile, error) {
	switch format {
	case ExportTXT, "":
		return &ExportFile{
			Filename:    fmt.Sprintf("%s.txt", notepad.Code),
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(renderTXT(notepad)),
		}, nil
	case ExportMD:
		return &ExportFile{
			Filename:    fmt.Sprintf("%s.md", notepad.Code),
			ContentType: "text/markdown; charset=utf-8",
			Body:        []byte(renderMD(notepad)),
		}, nil
	case ExportJSON:
		body, err := renderJSON(notepad)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s.json", notepad.Code),
			ContentType: "application/json",
			Body:        body,
		}, nil
	default:
		return nil, entities.ErrInvalidExportKind
	}
}

func renderTXT(notepad *entities.Notepad) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PasteBridge - %s\n", notepad.Code)
	fmt.Fprintf(&b, "Exported: %s\n\n", time.Now().UTC().Format(time.RFC3339))
	for _, e := range notepad.Entries {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Text)
	}
	return b.String()
}

func renderMD(notepad *entities.Notepad) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# PasteBridge: %s\n\n", notepad.Code)
	fmt.Fprintf(&b, "_Exported %s_\n\n", time.Now().UTC().Format(time.RFC3339))
	for _, e := range notepad.Entries {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Text)
	}
	return b.String()
}

func renderJSON(notepad *entities.Notepad) ([]byte, error) {
	type entry struct {
		Text      string    `json:"text"`
		Timestamp time.Time `json:"timestamp"`
	}
	entries := make([]entry, 0, len(notepad.Entries))
	for _, e := range notepad.Entries {
		entries = append(entries, entry{Text: e.Text, Timestamp: e.CreatedAt})
	}
	payload := struct {
		Code     string    `json:"code"`
		Exported time.Time `json:"exported"`
		Entries  []entry   `json:"entries"`
	}{
		Code:     notepad.Code,
		Exported: time.Now().UTC(),
		Entries:  entries,
	}
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}
	return body, nil
}
