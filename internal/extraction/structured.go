package extraction

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"

	"github.com/jonathan/visa-scraper/internal/llm"
	"github.com/jonathan/visa-scraper/internal/logging"
	"github.com/jonathan/visa-scraper/internal/prompts"
	"github.com/jonathan/visa-scraper/internal/schemas"
	"github.com/jonathan/visa-scraper/internal/types"
)

// DefaultMaxInputChars bounds how much page text is sent to the model.
const DefaultMaxInputChars = 60000

// Structured extracts visa fields with an LLM constrained by llm.VisaInfoSchema.
type Structured struct {
	client        llm.Client
	tier          llm.ModelTier
	maxInputChars int
}

// StructuredOption configures a Structured extractor.
type StructuredOption func(*Structured)

// WithTier selects the model tier used for extraction.
func WithTier(tier llm.ModelTier) StructuredOption {
	return func(s *Structured) { s.tier = tier }
}

// WithMaxInputChars overrides DefaultMaxInputChars.
func WithMaxInputChars(n int) StructuredOption {
	return func(s *Structured) { s.maxInputChars = n }
}

// NewStructured creates a Structured extractor backed by client.
func NewStructured(client llm.Client, opts ...StructuredOption) *Structured {
	s := &Structured{
		client:        client,
		tier:          llm.TierLite,
		maxInputChars: DefaultMaxInputChars,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract implements Extractor. Every failure is returned as *ExtractionError.
func (s *Structured) Extract(ctx context.Context, req Request) (*types.RawExtraction, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, &ExtractionError{Stage: "input", Message: "page content is empty"}
	}

	instruction, err := prompts.VisaExtraction(req.CountryName)
	if err != nil {
		return nil, &ExtractionError{Stage: "input", Message: "failed to load extraction prompt", Cause: err}
	}
	schema := llm.VisaInfoSchema(instruction)
	prompt := llm.BuildExtractionPrompt(schema, truncate(req.Content, s.maxInputChars))

	logging.Debug("calling extraction service", "url", req.SourceURL, "prompt_chars", len(prompt))
	resp, err := s.client.GenerateJSON(ctx, prompt, s.tier, &schema)
	if err != nil {
		return nil, &ExtractionError{Stage: "generate", Message: "extraction service call failed", Cause: err}
	}

	raw, err := ParseStructuredResponse(resp)
	if err != nil {
		return nil, err
	}
	raw.SourceURL = req.SourceURL
	raw.ExtractionMethod = types.MethodStructured
	return raw, nil
}

// ParseStructuredResponse validates a model response against the extraction schema and
// decodes it. A top-level array is accepted when its first element is an object.
func ParseStructuredResponse(resp string) (*types.RawExtraction, error) {
	cleaned := llm.CleanJSONBlock(resp)

	var decoded any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, &ExtractionError{Stage: "parse", Message: "response is not valid JSON", Cause: err}
	}

	obj, ok := firstObject(decoded)
	if !ok {
		return nil, &ExtractionError{Stage: "parse", Message: "response does not contain a JSON object"}
	}

	objJSON, err := json.Marshal(obj)
	if err != nil {
		return nil, &ExtractionError{Stage: "parse", Message: "failed to re-encode response object", Cause: err}
	}
	if err := schemas.ValidateExtraction(string(objJSON)); err != nil {
		return nil, &ExtractionError{Stage: "validate", Message: "response does not match extraction schema", Cause: err}
	}

	var raw types.RawExtraction
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, &ExtractionError{Stage: "decode", Message: "failed to build decoder", Cause: err}
	}
	if err := decoder.Decode(obj); err != nil {
		return nil, &ExtractionError{Stage: "decode", Message: "failed to decode response", Cause: err}
	}

	// provenance is set by the caller, never by the model
	raw.SourceURL = ""
	raw.ExtractionMethod = ""
	return &raw, nil
}

func firstObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case []any:
		if len(t) == 0 {
			return nil, false
		}
		obj, ok := t[0].(map[string]any)
		return obj, ok
	default:
		return nil, false
	}
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
