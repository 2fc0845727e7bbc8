package rendering

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/jonathan/visa-scraper/internal/types"
)

// DocumentType is the Sanity document type of a visa record.
const DocumentType = "digitalNomadVisa"

// documentNamespace seeds the deterministic document IDs.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://digitalnomadvisa.directory/visas"))

// SanityDocument is one line of the NDJSON import file.
type SanityDocument struct {
	ID   string `json:"_id"`
	Type string `json:"_type"`
	*types.VisaRecord
}

// DocumentID returns the stable document ID for a slug, so re-imports replace documents.
func DocumentID(slug string) string {
	return uuid.NewSHA1(documentNamespace, []byte(slug)).String()
}

// NewSanityDocument wraps record for import.
func NewSanityDocument(record *types.VisaRecord) SanityDocument {
	return SanityDocument{
		ID:         DocumentID(record.Slug.Current),
		Type:       DocumentType,
		VisaRecord: record,
	}
}

// EncodeNDJSON writes one document per record, one per line, in insertion order.
func EncodeNDJSON(w io.Writer, results *types.Results) error {
	if results == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, record := range results.Ordered() {
		if err := enc.Encode(NewSanityDocument(record)); err != nil {
			return &RenderError{Message: "failed to encode document", Cause: err}
		}
	}
	return nil
}

// WriteNDJSON writes the NDJSON import file to path.
func WriteNDJSON(path string, results *types.Results) error {
	var buf bytes.Buffer
	if err := EncodeNDJSON(&buf, results); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}
