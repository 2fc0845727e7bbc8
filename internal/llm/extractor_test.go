package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisaInfoSchema_RequiredFields(t *testing.T) {
	schema := VisaInfoSchema("Extract visa data.")

	assert.Equal(t, []string{"visa_name", "eligibility_criteria", "application_process"}, schema.RequiredFields())
	assert.Len(t, schema.Fields, 10)
}

func TestBuildExtractionPrompt(t *testing.T) {
	schema := VisaInfoSchema("Extract digital nomad visa information.")
	prompt := BuildExtractionPrompt(schema, "Minimum income 2,646 EUR per month.")

	assert.Contains(t, prompt, "Extract digital nomad visa information.")
	assert.Contains(t, prompt, `"visa_name": "string" (required)`)
	assert.Contains(t, prompt, `"min_monthly_income": number // Minimum monthly income requirement in EUR`)
	assert.Contains(t, prompt, `"path_to_residency": boolean`)
	assert.Contains(t, prompt, `"official_links": ["string"]`)
	assert.Contains(t, prompt, "Minimum income 2,646 EUR per month.")
}

func TestGenaiSchema(t *testing.T) {
	schema := VisaInfoSchema("x").GenaiSchema()

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"visa_name", "eligibility_criteria", "application_process"}, schema.Required)

	income := schema.Properties["min_monthly_income"]
	require.NotNil(t, income)
	assert.Equal(t, genai.TypeNumber, income.Type)
	assert.True(t, income.Nullable)

	criteria := schema.Properties["eligibility_criteria"]
	require.NotNil(t, criteria)
	assert.Equal(t, genai.TypeArray, criteria.Type)
	require.NotNil(t, criteria.Items)
	assert.Equal(t, genai.TypeString, criteria.Items.Type)
	assert.False(t, criteria.Nullable)

	assert.Equal(t, genai.TypeBoolean, schema.Properties["path_to_residency"].Type)
}
