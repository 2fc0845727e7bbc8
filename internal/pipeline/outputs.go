package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/jonathan/visa-scraper/internal/logging"
	"github.com/jonathan/visa-scraper/internal/pipeline/steps"
	"github.com/jonathan/visa-scraper/internal/rendering"
	"github.com/jonathan/visa-scraper/internal/types"
)

// OutputOptions selects the files written after a run.
type OutputOptions struct {
	Dir          string
	ImportScript bool
	NDJSON       bool
}

// outputStep is one file-writing step
type outputStep struct {
	name    string
	file    string
	enabled bool
	// optional steps are skipped instead of failing when their dependencies are unmet
	optional bool
	write    func(path string, results *types.Results) error
}

// WriteOutputs writes visa_data.json and the optional import files into opts.Dir and
// returns the paths written. Steps run once their dependencies are among the steps the
// driver has completed, so it must follow RunAll. The import script is skipped when no
// country was merged.
func (d *Driver) WriteOutputs(results *types.Results, opts OutputOptions) ([]string, error) {
	if results == nil {
		results = types.NewResults()
	}

	plan := []outputStep{
		{name: steps.WriteJSON, file: rendering.JSONFileName, enabled: true, write: rendering.WriteJSON},
		{name: steps.WriteImportScript, file: rendering.ImportScriptFileName, enabled: opts.ImportScript, optional: true, write: rendering.WriteImportScript},
		{name: steps.WriteNDJSON, file: rendering.NDJSONFileName, enabled: opts.NDJSON, write: rendering.WriteNDJSON},
	}

	completed := d.CompletedSteps()
	var written []string
	for {
		step, ok := nextOutputStep(plan, completed)
		if !ok {
			break
		}

		path := filepath.Join(opts.Dir, step.file)
		if err := step.write(path, results); err != nil {
			return written, fmt.Errorf("%s failed: %w", step.name, err)
		}
		completed[step.name] = true
		written = append(written, path)
		d.emitProgress(step.name, "", fmt.Sprintf("Wrote %s", path), nil)
	}

	for _, step := range plan {
		if !step.enabled || completed[step.name] {
			continue
		}
		err := steps.ValidateDependencies(completed, step.name)
		if !step.optional {
			return written, err
		}
		logging.Info("skipping output", "step", step.name, "reason", err)
	}
	return written, nil
}

// nextOutputStep returns the first enabled step of plan that is ready to run.
func nextOutputStep(plan []outputStep, completed map[string]bool) (outputStep, bool) {
	available := steps.GetAvailableSteps(completed)
	return lo.Find(plan, func(step outputStep) bool {
		return step.enabled && lo.Contains(available, step.name)
	})
}
