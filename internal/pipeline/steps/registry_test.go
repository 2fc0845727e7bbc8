package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{
		RunStarted, FetchPage, ExtractPage, MergeCountry, CountryFailed,
		WriteJSON, WriteImportScript, WriteNDJSON, RunCompleted,
	}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, StepRegistry, len(expectedSteps))
}

func TestStepRegistryCategories(t *testing.T) {
	categories := map[string][]string{
		CategoryLifecycle:  {RunStarted, RunCompleted},
		CategoryFetch:      {FetchPage},
		CategoryExtraction: {ExtractPage},
		CategoryMerge:      {MergeCountry, CountryFailed},
		CategoryOutput:     {WriteJSON, WriteImportScript, WriteNDJSON},
	}

	for category, stepNames := range categories {
		for _, stepName := range stepNames {
			assert.Equal(t, category, CategoryOf(stepName), "Step %s should be in category %s", stepName, category)
		}
	}
	assert.Equal(t, "", CategoryOf("nope"))
}

func TestDependenciesAreRegistered(t *testing.T) {
	for name, def := range StepRegistry {
		for _, dep := range def.Dependencies {
			_, ok := StepRegistry[dep]
			assert.True(t, ok, "step %s depends on unregistered step %s", name, dep)
		}
	}
}

func TestValidateDependencies(t *testing.T) {
	tests := []struct {
		name      string
		completed map[string]bool
		step      string
		missing   []string
	}{
		{
			name:      "json needs a completed run",
			completed: map[string]bool{FetchPage: true, ExtractPage: true, MergeCountry: true},
			step:      WriteJSON,
			missing:   []string{RunCompleted},
		},
		{
			name:      "json after an empty run",
			completed: map[string]bool{RunStarted: true, CountryFailed: true, RunCompleted: true},
			step:      WriteJSON,
		},
		{
			name:      "import script without a merged country",
			completed: map[string]bool{RunCompleted: true, WriteJSON: true},
			step:      WriteImportScript,
			missing:   []string{MergeCountry},
		},
		{
			name:      "import script before json",
			completed: map[string]bool{MergeCountry: true, RunCompleted: true},
			step:      WriteImportScript,
			missing:   []string{WriteJSON},
		},
		{
			name:      "import script ready",
			completed: map[string]bool{MergeCountry: true, RunCompleted: true, WriteJSON: true},
			step:      WriteImportScript,
		},
		{
			name:      "merge needs an extraction",
			completed: map[string]bool{FetchPage: true},
			step:      MergeCountry,
			missing:   []string{ExtractPage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDependencies(tt.completed, tt.step)
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var depErr *DependencyError
			require.ErrorAs(t, err, &depErr)
			assert.Equal(t, tt.step, depErr.Step)
			assert.Equal(t, tt.missing, depErr.MissingDependencies)
			assert.Contains(t, err.Error(), "missing dependencies")
		})
	}
}

func TestValidateDependencies_UnknownStep(t *testing.T) {
	err := ValidateDependencies(nil, "unknown_step")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestGetAvailableSteps(t *testing.T) {
	completed := map[string]bool{
		RunStarted: true, FetchPage: true, ExtractPage: true, MergeCountry: true, RunCompleted: true,
	}
	available := GetAvailableSteps(completed)

	assert.Contains(t, available, WriteJSON)
	assert.Contains(t, available, WriteNDJSON)
	assert.NotContains(t, available, WriteImportScript)
	assert.NotContains(t, available, MergeCountry)
	assert.IsIncreasing(t, available)

	completed[WriteJSON] = true
	assert.Contains(t, GetAvailableSteps(completed), WriteImportScript)
}
