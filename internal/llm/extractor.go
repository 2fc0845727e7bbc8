// Package llm - extractor.go describes extraction schemas and turns them into prompts.
package llm

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// FieldType is the declared type of one extracted field.
type FieldType string

const (
	// FieldString is a free-text value
	FieldString FieldType = "string"
	// FieldNumber is a numeric value
	FieldNumber FieldType = "number"
	// FieldBoolean is a yes/no value
	FieldBoolean FieldType = "boolean"
	// FieldStringList is an array of strings
	FieldStringList FieldType = "array<string>"
)

// ExtractionSchema defines what the model should pull out of a page.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "VisaInfo")
	Description string        // Instruction preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// RequiredFields returns the names of required fields in declaration order.
func (s ExtractionSchema) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// GenaiSchema converts the schema to a Gemini response schema.
func (s ExtractionSchema) GenaiSchema() *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = fieldGenaiSchema(f)
	}
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: s.Name,
		Properties:  props,
		Required:    s.RequiredFields(),
	}
}

func fieldGenaiSchema(f SchemaField) *genai.Schema {
	schema := &genai.Schema{
		Description: f.Description,
		Nullable:    !f.Required,
	}
	switch f.Type {
	case FieldNumber:
		schema.Type = genai.TypeNumber
	case FieldBoolean:
		schema.Type = genai.TypeBoolean
	case FieldStringList:
		schema.Type = genai.TypeArray
		schema.Items = &genai.Schema{Type: genai.TypeString}
	default:
		schema.Type = genai.TypeString
	}
	return schema
}

func typeHint(t FieldType) string {
	switch t {
	case FieldNumber:
		return "number"
	case FieldBoolean:
		return "boolean"
	case FieldStringList:
		return `["string"]`
	default:
		return `"string"`
	}
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(schema.Description))
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint(field.Type), requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use null for optional fields the page does not state.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Page content:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// VisaInfoSchema returns the extraction schema for digital nomad visa pages.
// instruction is the task preamble placed before the field list.
func VisaInfoSchema(instruction string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "VisaInfo",
		Description: instruction,
		Fields: []SchemaField{
			{Name: "visa_name", Type: FieldString, Description: "Official name of the digital nomad visa", Required: true},
			{Name: "min_monthly_income", Type: FieldNumber, Description: "Minimum monthly income requirement in EUR"},
			{Name: "eligibility_criteria", Type: FieldStringList, Description: "List of eligibility requirements", Required: true},
			{Name: "application_process", Type: FieldStringList, Description: "Step-by-step application process", Required: true},
			{Name: "required_documents", Type: FieldStringList, Description: "List of required documents"},
			{Name: "visa_duration", Type: FieldString, Description: "Duration of the visa (e.g., '1 year, renewable')"},
			{Name: "processing_time", Type: FieldString, Description: "Expected processing time"},
			{Name: "application_fee", Type: FieldString, Description: "Cost of the visa application"},
			{Name: "path_to_residency", Type: FieldBoolean, Description: "Whether this visa leads to permanent residency"},
			{Name: "official_links", Type: FieldStringList, Description: "Official government links"},
		},
	}
}
