package db

import (
	"testing"

	"github.com/dtnitsch/screensift/models"
)

func TestInsertAndListEvalRuns(t *testing.T) {
	database := setupTestDB(t)

	run := EvalRun{
		RunID:       "run-001",
		Threshold:   5.0,
		SampleCount: 2,
		Accuracy:    0.5,
	}
	predictions := []Prediction{
		{
			ImagePath:      "/shots/a.png",
			TrueLabel:      models.ItemRecipe,
			PredictedLabel: models.ItemRecipe,
			RecipeScore:    8.0,
			WorkoutScore:   1.0,
			QuoteScore:     0.0,
			Language:       "en",
		},
		{
			ImagePath:      "/shots/b.png",
			TrueLabel:      models.ItemWorkout,
			PredictedLabel: models.ItemNone,
			RecipeScore:    0.0,
			WorkoutScore:   3.0,
			QuoteScore:     1.0,
			Language:       "en",
		},
	}

	if err := database.InsertEvalRun(run, predictions); err != nil {
		t.Fatalf("InsertEvalRun() error = %v", err)
	}

	runs, err := database.ListEvalRuns(10)
	if err != nil {
		t.Fatalf("ListEvalRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListEvalRuns() = %d runs, want 1", len(runs))
	}
	if runs[0].RunID != "run-001" {
		t.Errorf("RunID = %q, want run-001", runs[0].RunID)
	}
	if runs[0].Accuracy != 0.5 {
		t.Errorf("Accuracy = %f, want 0.5", runs[0].Accuracy)
	}

	stored, err := database.GetRunPredictions("run-001")
	if err != nil {
		t.Fatalf("GetRunPredictions() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("GetRunPredictions() = %d predictions, want 2", len(stored))
	}
	if stored[0].PredictedLabel != models.ItemRecipe {
		t.Errorf("first prediction = %v, want recipe", stored[0].PredictedLabel)
	}
	if stored[1].PredictedLabel != models.ItemNone {
		t.Errorf("second prediction = %v, want none", stored[1].PredictedLabel)
	}
	if stored[1].WorkoutScore != 3.0 {
		t.Errorf("WorkoutScore = %f, want 3.0", stored[1].WorkoutScore)
	}
}

func TestInsertEvalRunDuplicateID(t *testing.T) {
	database := setupTestDB(t)

	run := EvalRun{RunID: "run-dup", Threshold: 5.0}
	if err := database.InsertEvalRun(run, nil); err != nil {
		t.Fatalf("first InsertEvalRun() error = %v", err)
	}
	if err := database.InsertEvalRun(run, nil); err == nil {
		t.Error("duplicate run_id insert succeeded, want primary key violation")
	}
}

func TestPredictionRequiresRun(t *testing.T) {
	database := setupTestDB(t)

	_, err := database.Exec(`
		INSERT INTO predictions
			(run_id, image_path, true_label, predicted_label,
			 recipe_score, workout_score, quote_score)
		VALUES (?, ?, ?, ?, 0, 0, 0)`,
		"no-such-run", "/shots/a.png", "recipe", "recipe")
	if err == nil {
		t.Error("prediction insert without parent run succeeded, want FK violation")
	}
}

func TestListEvalRunsLimit(t *testing.T) {
	database := setupTestDB(t)

	for _, id := range []string{"r1", "r2", "r3"} {
		if err := database.InsertEvalRun(EvalRun{RunID: id, Threshold: 5.0}, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := database.ListEvalRuns(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("ListEvalRuns(2) = %d runs, want 2", len(runs))
	}
}
