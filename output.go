package pdfoutline

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// outlineJSON is the wire form of an Outline.
type outlineJSON struct {
	Title   string      `json:"title"`
	Outline []entryJSON `json:"outline"`
}

// entryJSON is the wire form of a single outline entry.
type entryJSON struct {
	Level HeadingLevel `json:"level"`
	Text  string       `json:"text"`
	Page  int          `json:"page"`
}

// WriteOutline writes the outline to w as indented JSON. The entry list is
// always a JSON array, never null, and non-ASCII heading text is written
// unescaped.
func WriteOutline(w io.Writer, outline *Outline) error {
	out := outlineJSON{
		Title:   outline.Title,
		Outline: make([]entryJSON, 0, len(outline.Entries)),
	}
	for _, entry := range outline.Entries {
		out.Outline = append(out.Outline, entryJSON{
			Level: entry.Level,
			Text:  entry.Text,
			Page:  entry.Page,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(out); err != nil {
		return errors.Wrap(err, "failed to encode outline")
	}
	return nil
}

// MarshalOutline returns the outline in its serialized form.
func MarshalOutline(outline *Outline) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteOutline(&buf, outline); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteOutlineFile writes the outline to path, creating parent directories
// as needed.
func WriteOutlineFile(path string, outline *Outline) error {
	data, err := MarshalOutline(outline)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// OutputPath maps an input document path to its outline artifact in
// outputDir: the input file stem with a .json extension.
func OutputPath(inputPath, outputDir string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outputDir, stem+".json")
}
