// Package eval runs the classifier over the labelled corpus and aggregates
// a confusion matrix with per-category precision and recall.
package eval

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dtnitsch/screensift/models"
	"github.com/dtnitsch/screensift/pkg/db"
	"github.com/dtnitsch/screensift/pkg/features"
	"github.com/dtnitsch/screensift/pkg/heuristics"
	"github.com/dtnitsch/screensift/pkg/language"
	"github.com/dtnitsch/screensift/pkg/ocr"
)

// Sample is one labelled screenshot to evaluate.
type Sample struct {
	ImagePath string
	TrueLabel models.ItemType
}

// Options control an evaluation run.
type Options struct {
	Threshold float64
	Workers   int
}

// Report is the aggregated outcome of one evaluation run.
//
// Confusion is indexed [true][predicted] in the order of
// models.AllItemTypes (recipe, workout, quote, none).
type Report struct {
	RunID       string            `json:"run_id"`
	Threshold   float64           `json:"threshold"`
	SampleCount int               `json:"sample_count"`
	Skipped     int               `json:"skipped"`
	Accuracy    float64           `json:"accuracy"`
	LabelOrder  []models.ItemType `json:"label_order"`
	Confusion   [4][4]int         `json:"confusion_matrix"`

	Precision map[models.ItemType]float64 `json:"precision"`
	Recall    map[models.ItemType]float64 `json:"recall"`

	Predictions []db.Prediction `json:"-"`
}

type job struct {
	sample Sample
}

type result struct {
	prediction db.Prediction
	skipped    bool
}

// Evaluate classifies every sample on a worker pool and aggregates metrics.
// Samples whose image cannot be read are skipped and counted, not fatal.
func Evaluate(logger *slog.Logger, runner *ocr.Runner, detector *language.Detector, samples []Sample, opts Options) *Report {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	logger.Info("Starting evaluation", "samples", len(samples), "workers", workers, "threshold", opts.Threshold)

	var wg sync.WaitGroup
	jobs := make(chan job, len(samples))
	results := make(chan result, len(samples))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(w, logger, runner, detector, opts.Threshold, &wg, jobs, results)
	}

	for _, s := range samples {
		jobs <- job{sample: s}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All evaluation workers finished")

	report := &Report{
		RunID:      uuid.NewString(),
		Threshold:  opts.Threshold,
		LabelOrder: models.AllItemTypes(),
	}

	for r := range results {
		if r.skipped {
			report.Skipped++
			continue
		}
		report.Predictions = append(report.Predictions, r.prediction)
	}

	aggregate(report)
	return report
}

// worker classifies samples from jobs until the channel drains.
func worker(id int, logger *slog.Logger, runner *ocr.Runner, detector *language.Detector, threshold float64, wg *sync.WaitGroup, jobs <-chan job, results chan<- result) {
	defer wg.Done()
	for j := range jobs {
		sample := j.sample

		ocrResult, err := runner.Run(sample.ImagePath)
		if err != nil {
			logger.Warn("Skipping sample", "worker", id, "image", sample.ImagePath, "error", err)
			results <- result{skipped: true}
			continue
		}

		feats := features.Compute(ocrResult)
		classification := heuristics.Classify(feats, threshold)

		lang := language.Unknown
		if detector != nil {
			lang = detector.Detect(ocrResult.FullText)
		}

		results <- result{prediction: db.Prediction{
			ImagePath:      sample.ImagePath,
			TrueLabel:      sample.TrueLabel,
			PredictedLabel: classification.ItemType,
			RecipeScore:    classification.Scores[models.ItemRecipe],
			WorkoutScore:   classification.Scores[models.ItemWorkout],
			QuoteScore:     classification.Scores[models.ItemQuote],
			Language:       lang,
		}}
	}
}

// aggregate fills the confusion matrix and the derived metrics.
func aggregate(report *Report) {
	index := make(map[models.ItemType]int, len(report.LabelOrder))
	for i, label := range report.LabelOrder {
		index[label] = i
	}

	correct := 0
	for _, p := range report.Predictions {
		report.Confusion[index[p.TrueLabel]][index[p.PredictedLabel]]++
		if p.TrueLabel == p.PredictedLabel {
			correct++
		}
	}

	report.SampleCount = len(report.Predictions)
	if report.SampleCount > 0 {
		report.Accuracy = float64(correct) / float64(report.SampleCount)
	}

	report.Precision = make(map[models.ItemType]float64, len(report.LabelOrder))
	report.Recall = make(map[models.ItemType]float64, len(report.LabelOrder))

	for i, label := range report.LabelOrder {
		truePositive := report.Confusion[i][i]

		predicted := 0 // column sum: everything predicted as label
		actual := 0    // row sum: everything truly label
		for j := range report.LabelOrder {
			predicted += report.Confusion[j][i]
			actual += report.Confusion[i][j]
		}

		report.Precision[label] = safeRatio(truePositive, predicted)
		report.Recall[label] = safeRatio(truePositive, actual)
	}
}

// safeRatio divides with the zero-division convention of the original
// metrics: no support means 0, not NaN.
func safeRatio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
