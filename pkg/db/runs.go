package db

import (
	"fmt"
	"time"

	"github.com/dtnitsch/screensift/models"
)

// EvalRun summarizes one evaluation pass over the labelled corpus.
type EvalRun struct {
	RunID       string
	Threshold   float64
	SampleCount int
	Accuracy    float64
	CreatedAt   time.Time
}

// Prediction is one classified image inside an evaluation run.
type Prediction struct {
	ImagePath      string
	TrueLabel      models.ItemType
	PredictedLabel models.ItemType
	RecipeScore    float64
	WorkoutScore   float64
	QuoteScore     float64
	Language       string
}

// InsertEvalRun stores a run and its predictions in one transaction.
func (db *DB) InsertEvalRun(run EvalRun, predictions []Prediction) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO eval_runs (run_id, threshold, sample_count, accuracy)
		VALUES (?, ?, ?, ?)`,
		run.RunID, run.Threshold, run.SampleCount, run.Accuracy)
	if err != nil {
		return fmt.Errorf("failed to insert eval run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO predictions
			(run_id, image_path, true_label, predicted_label,
			 recipe_score, workout_score, quote_score, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare prediction insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range predictions {
		_, err := stmt.Exec(run.RunID, p.ImagePath, p.TrueLabel.String(), p.PredictedLabel.String(),
			p.RecipeScore, p.WorkoutScore, p.QuoteScore, p.Language)
		if err != nil {
			return fmt.Errorf("failed to insert prediction for %s: %w", p.ImagePath, err)
		}
	}

	return tx.Commit()
}

// ListEvalRuns returns the most recent runs, newest first.
func (db *DB) ListEvalRuns(limit int) ([]EvalRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, threshold, sample_count, accuracy, created_at
		FROM eval_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list eval runs: %w", err)
	}
	defer rows.Close()

	var runs []EvalRun
	for rows.Next() {
		var r EvalRun
		if err := rows.Scan(&r.RunID, &r.Threshold, &r.SampleCount, &r.Accuracy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan eval run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunPredictions returns the stored predictions for a run.
func (db *DB) GetRunPredictions(runID string) ([]Prediction, error) {
	rows, err := db.Query(`
		SELECT image_path, true_label, predicted_label,
		       recipe_score, workout_score, quote_score, COALESCE(language, '')
		FROM predictions
		WHERE run_id = ?
		ORDER BY prediction_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get predictions for run %s: %w", runID, err)
	}
	defer rows.Close()

	var predictions []Prediction
	for rows.Next() {
		var p Prediction
		var trueStr, predStr string
		if err := rows.Scan(&p.ImagePath, &trueStr, &predStr,
			&p.RecipeScore, &p.WorkoutScore, &p.QuoteScore, &p.Language); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if p.TrueLabel, err = models.ParseItemType(trueStr); err != nil {
			return nil, err
		}
		if p.PredictedLabel, err = models.ParseItemType(predStr); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}
