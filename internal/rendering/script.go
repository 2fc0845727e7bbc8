package rendering

import (
	"bytes"
	_ "embed" // import script template
	"io"
	"text/template"

	"github.com/jonathan/visa-scraper/internal/types"
)

//go:embed templates/sanity_import.js.tmpl
var importScriptTemplate string

// importScriptData is passed to the import script template
type importScriptData struct {
	Data       string
	NDJSONFile string
}

var importScript = template.Must(template.New("sanity_import").Parse(importScriptTemplate))

// RenderImportScript writes the import script embedding the records as a literal array.
func RenderImportScript(w io.Writer, results *types.Results) error {
	records := []*types.VisaRecord{}
	if results != nil {
		records = results.Ordered()
	}

	data, err := marshalIndent(records, "")
	if err != nil {
		return &RenderError{Message: "failed to encode records", Cause: err}
	}

	if err := importScript.Execute(w, importScriptData{
		Data:       string(data),
		NDJSONFile: NDJSONFileName,
	}); err != nil {
		return &TemplateError{Message: "failed to execute template", Cause: err}
	}
	return nil
}

// WriteImportScript writes the import script to path.
func WriteImportScript(path string, results *types.Results) error {
	var buf bytes.Buffer
	if err := RenderImportScript(&buf, results); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}
