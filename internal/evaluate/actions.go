// Package evaluate implements the "eval" and "runs" commands.
package evaluate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/screensift/internal/common"
	"github.com/dtnitsch/screensift/pkg/db"
	"github.com/dtnitsch/screensift/pkg/eval"
	"github.com/dtnitsch/screensift/pkg/language"
)

// EvalAction runs the classifier over every labelled image and reports the
// confusion matrix, per-category precision/recall and accuracy. The run and
// its per-image predictions are persisted for later inspection.
func EvalAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	threshold := cfg.Threshold
	if c.IsSet("threshold") {
		threshold = c.Float64("threshold")
	}
	workers := cfg.WorkerCount
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	entries, err := database.ListLabels(nil)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no labelled images found; add labels with 'screensift labels add' first")
	}

	samples := make([]eval.Sample, 0, len(entries))
	for _, label := range entries {
		samples = append(samples, eval.Sample{
			ImagePath: label.ImagePath,
			TrueLabel: label.TrueLabel,
		})
	}

	runner, closer, err := common.NewRunner(logger, cfg, false)
	if err != nil {
		return err
	}
	defer closer()

	report := eval.Evaluate(logger, runner, language.NewDetector(), samples, eval.Options{
		Threshold: threshold,
		Workers:   workers,
	})

	if report.SampleCount == 0 {
		return fmt.Errorf("no samples could be evaluated (%d skipped)", report.Skipped)
	}

	if err := database.InsertEvalRun(db.EvalRun{
		RunID:       report.RunID,
		Threshold:   report.Threshold,
		SampleCount: report.SampleCount,
		Accuracy:    report.Accuracy,
	}, report.Predictions); err != nil {
		return fmt.Errorf("failed to store evaluation run: %w", err)
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	fmt.Print(report.RenderText())
	return nil
}

// RunsAction lists past evaluation runs, newest first.
func RunsAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListEvalRuns(c.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Printf("No evaluation runs found in %s\n", database.Path())
		return nil
	}

	fmt.Printf("%-36s %-20s %-10s %-8s %-8s\n", "Run", "Created", "Threshold", "Samples", "Accuracy")
	fmt.Println(strings.Repeat("-", 88))
	for _, run := range runs {
		fmt.Printf("%-36s %-20s %-10.1f %-8d %-8.3f\n",
			run.RunID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Threshold,
			run.SampleCount,
			run.Accuracy,
		)
	}
	fmt.Printf("\nTotal: %d runs\n", len(runs))
	return nil
}
