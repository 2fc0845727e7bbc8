package rendering

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/visa-scraper/internal/schemas"
	"github.com/jonathan/visa-scraper/internal/types"
)

// Output file names.
const (
	JSONFileName         = "visa_data.json"
	ImportScriptFileName = "sanity_import.js"
	NDJSONFileName       = "visa_data.ndjson"
)

// EncodeJSON writes results as one JSON object keyed by country key, in insertion order,
// indented by two spaces. HTML and non-ASCII characters are written unescaped.
// Every record must satisfy schemas.VisaRecordSchema; nothing is written otherwise.
func EncodeJSON(w io.Writer, results *types.Results) error {
	var buf bytes.Buffer
	if results == nil || results.Len() == 0 {
		buf.WriteString("{}\n")
		_, err := w.Write(buf.Bytes())
		return err
	}

	buf.WriteString("{\n")
	for i, key := range results.Keys {
		keyJSON, err := marshalIndent(key, "")
		if err != nil {
			return err
		}
		recordJSON, err := marshalIndent(results.Records[key], "  ")
		if err != nil {
			return err
		}
		if err := schemas.ValidateRecord(recordJSON); err != nil {
			return fmt.Errorf("record %s: %w", key, err)
		}

		buf.WriteString("  ")
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(recordJSON)
		if i < len(results.Keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteJSON writes results to path, creating parent directories as needed.
func WriteJSON(path string, results *types.Results) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, results); err != nil {
		return &RenderError{Path: path, Message: "failed to encode results", Cause: err}
	}
	return writeFile(path, buf.Bytes())
}

// marshalIndent encodes v with two-space indentation and without HTML escaping.
func marshalIndent(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &RenderError{Path: path, Message: "failed to create output directory", Cause: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &RenderError{Path: path, Message: "failed to write file", Cause: err}
	}
	return nil
}

// EncodeRecord writes one record as indented JSON followed by a newline.
func EncodeRecord(w io.Writer, record *types.VisaRecord) error {
	data, err := marshalIndent(record, "")
	if err != nil {
		return &RenderError{Message: "failed to encode record", Cause: err}
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
