package db

import (
	"path/filepath"
	"testing"

	"github.com/dtnitsch/screensift/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	database := &DB{DB: sqlDB, path: ":memory:"}
	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestOpenSetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer database.Close()

	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
}

func TestUpsertAndGetLabel(t *testing.T) {
	database := setupTestDB(t)

	if err := database.UpsertLabel("/shots/a.png", models.ItemRecipe, "abc123"); err != nil {
		t.Fatalf("UpsertLabel() error = %v", err)
	}

	label, err := database.GetLabel("/shots/a.png")
	if err != nil {
		t.Fatalf("GetLabel() error = %v", err)
	}
	if label == nil {
		t.Fatal("GetLabel() returned nil for existing label")
	}
	if label.TrueLabel != models.ItemRecipe {
		t.Errorf("TrueLabel = %v, want recipe", label.TrueLabel)
	}
	if label.ImageHash != "abc123" {
		t.Errorf("ImageHash = %q, want abc123", label.ImageHash)
	}
}

func TestGetLabelMissing(t *testing.T) {
	database := setupTestDB(t)

	label, err := database.GetLabel("/shots/nowhere.png")
	if err != nil {
		t.Fatalf("GetLabel() error = %v", err)
	}
	if label != nil {
		t.Errorf("GetLabel() = %+v, want nil for unlabelled image", label)
	}
}

func TestUpsertLabelRelabel(t *testing.T) {
	database := setupTestDB(t)

	if err := database.UpsertLabel("/shots/a.png", models.ItemRecipe, "hash1"); err != nil {
		t.Fatal(err)
	}
	// Relabel without a hash: category changes, old hash survives.
	if err := database.UpsertLabel("/shots/a.png", models.ItemWorkout, ""); err != nil {
		t.Fatal(err)
	}

	label, err := database.GetLabel("/shots/a.png")
	if err != nil {
		t.Fatal(err)
	}
	if label.TrueLabel != models.ItemWorkout {
		t.Errorf("TrueLabel = %v, want workout after relabel", label.TrueLabel)
	}
	if label.ImageHash != "hash1" {
		t.Errorf("ImageHash = %q, want hash1 preserved", label.ImageHash)
	}

	labels, err := database.ListLabels(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 1 {
		t.Errorf("ListLabels() returned %d rows, want 1 after upsert", len(labels))
	}
}

func TestListLabelsFilter(t *testing.T) {
	database := setupTestDB(t)

	entries := map[string]models.ItemType{
		"/shots/r1.png": models.ItemRecipe,
		"/shots/r2.png": models.ItemRecipe,
		"/shots/w1.png": models.ItemWorkout,
		"/shots/q1.png": models.ItemQuote,
		"/shots/n1.png": models.ItemNone,
	}
	for path, label := range entries {
		if err := database.UpsertLabel(path, label, ""); err != nil {
			t.Fatal(err)
		}
	}

	all, err := database.ListLabels(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("ListLabels(nil) = %d rows, want 5", len(all))
	}

	recipe := models.ItemRecipe
	recipes, err := database.ListLabels(&recipe)
	if err != nil {
		t.Fatal(err)
	}
	if len(recipes) != 2 {
		t.Errorf("ListLabels(recipe) = %d rows, want 2", len(recipes))
	}
	for _, label := range recipes {
		if label.TrueLabel != models.ItemRecipe {
			t.Errorf("filtered list contains %v", label.TrueLabel)
		}
	}

	counts, err := database.CountLabels()
	if err != nil {
		t.Fatal(err)
	}
	if counts[models.ItemRecipe] != 2 || counts[models.ItemWorkout] != 1 {
		t.Errorf("CountLabels() = %v", counts)
	}
}

func TestDeleteLabel(t *testing.T) {
	database := setupTestDB(t)

	if err := database.UpsertLabel("/shots/a.png", models.ItemQuote, ""); err != nil {
		t.Fatal(err)
	}

	deleted, err := database.DeleteLabel("/shots/a.png")
	if err != nil {
		t.Fatalf("DeleteLabel() error = %v", err)
	}
	if !deleted {
		t.Error("DeleteLabel() = false, want true for existing label")
	}

	deleted, err = database.DeleteLabel("/shots/a.png")
	if err != nil {
		t.Fatal(err)
	}
	if deleted {
		t.Error("DeleteLabel() = true for already-deleted label")
	}
}

func TestUpsertLabelRejectsUnknownCategory(t *testing.T) {
	database := setupTestDB(t)

	_, err := database.Exec(
		"INSERT INTO labels (image_path, true_label) VALUES (?, ?)",
		"/shots/bad.png", "pasta")
	if err == nil {
		t.Error("insert with unknown category succeeded, want CHECK violation")
	}
}
