// Package steps defines the named steps of a scrape run, their categories and the
// order in which they depend on each other.
package steps

import (
	"fmt"
	"sort"
)

// Step names, used as ProgressEvent.Step.
const (
	RunStarted        = "run_started"
	FetchPage         = "fetch_page"
	ExtractPage       = "extract_page"
	MergeCountry      = "merge_country"
	CountryFailed     = "country_failed"
	WriteJSON         = "write_json"
	WriteImportScript = "write_import_script"
	WriteNDJSON       = "write_ndjson"
	RunCompleted      = "run_completed"
)

// Step categories, used as ProgressEvent.Category.
const (
	CategoryLifecycle  = "lifecycle"
	CategoryFetch      = "fetch"
	CategoryExtraction = "extraction"
	CategoryMerge      = "merge"
	CategoryOutput     = "output"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	RunStarted: {
		Name:     RunStarted,
		Category: CategoryLifecycle,
	},
	FetchPage: {
		Name:     FetchPage,
		Category: CategoryFetch,
	},
	ExtractPage: {
		Name:         ExtractPage,
		Category:     CategoryExtraction,
		Dependencies: []string{FetchPage},
	},
	MergeCountry: {
		Name:         MergeCountry,
		Category:     CategoryMerge,
		Dependencies: []string{ExtractPage},
	},
	CountryFailed: {
		Name:     CountryFailed,
		Category: CategoryMerge,
	},
	// visa_data.json is written after every completed run, even one with no results
	WriteJSON: {
		Name:         WriteJSON,
		Category:     CategoryOutput,
		Dependencies: []string{RunCompleted},
	},
	// the import script embeds records, so at least one country must have merged
	WriteImportScript: {
		Name:         WriteImportScript,
		Category:     CategoryOutput,
		Dependencies: []string{MergeCountry, WriteJSON},
	},
	WriteNDJSON: {
		Name:         WriteNDJSON,
		Category:     CategoryOutput,
		Dependencies: []string{RunCompleted},
	},
	RunCompleted: {
		Name:     RunCompleted,
		Category: CategoryLifecycle,
	},
}

// CategoryOf returns the category of a step, or "" for unknown steps.
func CategoryOf(step string) string {
	return StepRegistry[step].Category
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every dependency of stepName is in completed.
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// GetAvailableSteps returns the steps not yet completed whose dependencies are met, sorted.
func GetAvailableSteps(completed map[string]bool) []string {
	var available []string
	for name := range StepRegistry {
		if completed[name] {
			continue
		}
		if ValidateDependencies(completed, name) != nil {
			continue
		}
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}
