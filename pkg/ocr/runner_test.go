package ocr

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dtnitsch/screensift/models"
	"github.com/dtnitsch/screensift/pkg/ocrcache"
)

type fakeEngine struct {
	text  string
	err   error
	calls int
}

func (f *fakeEngine) Recognize(imageData []byte) (models.OcrResult, error) {
	f.calls++
	if f.err != nil {
		return models.OcrResult{}, f.err
	}
	return models.OcrResultFromText(f.text), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func writeImage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunnerEngineRecognition(t *testing.T) {
	engine := &fakeEngine{text: "Ingredients\n2 cups flour"}
	runner := NewRunner(testLogger(), nil, engine)

	result, err := runner.Run(writeImage(t, "image bytes"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.FullText != "Ingredients\n2 cups flour" {
		t.Errorf("FullText = %q", result.FullText)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1", engine.calls)
	}
}

func TestRunnerCacheHitSkipsEngine(t *testing.T) {
	cache, err := ocrcache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	engine := &fakeEngine{text: "cached text"}
	runner := NewRunner(testLogger(), cache, engine)
	path := writeImage(t, "image bytes")

	if _, err := runner.Run(path); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	result, err := runner.Run(path)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if result.FullText != "cached text" {
		t.Errorf("FullText = %q", result.FullText)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1 (second call should hit cache)", engine.calls)
	}
}

func TestRunnerCacheHitWithNilEngine(t *testing.T) {
	cache, err := ocrcache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	path := writeImage(t, "image bytes")
	imageData, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Set(ocrcache.Key(imageData), models.OcrResultFromText("warm entry")); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(testLogger(), cache, nil)
	result, err := runner.Run(path)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.FullText != "warm entry" {
		t.Errorf("FullText = %q, want warm entry", result.FullText)
	}
}

func TestRunnerCacheMissWithNilEngine(t *testing.T) {
	runner := NewRunner(testLogger(), nil, nil)

	_, err := runner.Run(writeImage(t, "image bytes"))
	if !errors.Is(err, ErrNoEngine) {
		t.Errorf("Run() error = %v, want ErrNoEngine", err)
	}
}

func TestRunnerEngineFailureReturnsEmptyResult(t *testing.T) {
	engine := &fakeEngine{err: errors.New("tesseract crashed")}
	runner := NewRunner(testLogger(), nil, engine)

	result, err := runner.Run(writeImage(t, "image bytes"))
	if err != nil {
		t.Fatalf("Run() error = %v, engine failure should not be fatal", err)
	}
	if !result.IsEmpty() {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestRunnerUnreadableImage(t *testing.T) {
	runner := NewRunner(testLogger(), nil, &fakeEngine{text: "x"})

	if _, err := runner.Run(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Run() on missing file succeeded, want error")
	}
}
