// Package classify implements the "classify" and "ocr" commands.
package classify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/screensift/internal/common"
	"github.com/dtnitsch/screensift/models"
	"github.com/dtnitsch/screensift/pkg/features"
	"github.com/dtnitsch/screensift/pkg/heuristics"
	"github.com/dtnitsch/screensift/pkg/language"
	"github.com/dtnitsch/screensift/pkg/ocrcache"
)

// output is the JSON shape of a single classification.
type output struct {
	Image     string                      `json:"image,omitempty"`
	ItemType  models.ItemType             `json:"item_type"`
	Scores    map[models.ItemType]float64 `json:"scores"`
	Threshold float64                     `json:"threshold"`
	Language  string                      `json:"language"`
	Features  features.Features           `json:"features"`
}

// ClassifyAction classifies one screenshot (or pre-extracted text).
func ClassifyAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	threshold := cfg.Threshold
	if c.IsSet("threshold") {
		threshold = c.Float64("threshold")
	}

	ocrResult, imagePath, err := resolveInput(c, logger, cfg)
	if err != nil {
		return err
	}

	feats := features.Compute(ocrResult)
	result := heuristics.Classify(feats, threshold)

	detector := language.NewDetector()
	lang := detector.Detect(ocrResult.FullText)
	if !detector.IsEnglish(ocrResult.FullText) {
		logger.Warn("Non-English text detected; heuristic vocabularies are English-only",
			"language", lang)
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(output{
			Image:     imagePath,
			ItemType:  result.ItemType,
			Scores:    result.Scores,
			Threshold: result.Threshold,
			Language:  lang,
			Features:  feats,
		})
	}

	fmt.Printf("decision:  %s\n", result.ItemType)
	for _, category := range models.Categories() {
		fmt.Printf("%-9s  %.1f\n", category.String()+":", result.Scores[category])
	}
	fmt.Printf("threshold: %.1f\n", result.Threshold)
	fmt.Printf("language:  %s\n", lang)
	return nil
}

// resolveInput produces the OcrResult from --image (OCR pipeline) or --text
// (pre-extracted text file, usable in builds without the ocr tag).
func resolveInput(c *cli.Context, logger *slog.Logger, cfg *models.Config) (models.OcrResult, string, error) {
	if textPath := c.String("text"); textPath != "" {
		data, err := os.ReadFile(textPath)
		if err != nil {
			return models.OcrResult{}, "", fmt.Errorf("failed to read text file %s: %w", textPath, err)
		}
		return models.OcrResultFromText(string(data)), "", nil
	}

	imagePath, err := common.ResolveImagePath(c.String("image"))
	if err != nil {
		return models.OcrResult{}, "", err
	}

	runner, closer, err := common.NewRunner(logger, cfg, c.Bool("no-cache"))
	if err != nil {
		return models.OcrResult{}, "", err
	}
	defer closer()

	ocrResult, err := runner.Run(imagePath)
	if err != nil {
		return models.OcrResult{}, "", err
	}
	return ocrResult, imagePath, nil
}

// OcrAction runs OCR for one image and prints the recognized text.
func OcrAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	imagePath, err := common.ResolveImagePath(c.String("image"))
	if err != nil {
		return err
	}

	runner, closer, err := common.NewRunner(logger, cfg, c.Bool("no-cache"))
	if err != nil {
		return err
	}
	defer closer()

	ocrResult, err := runner.Run(imagePath)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		return json.NewEncoder(os.Stdout).Encode(ocrResult)
	}

	if ocrResult.IsEmpty() {
		fmt.Println("(no text recognized)")
		return nil
	}
	fmt.Println(ocrResult.FullText)
	return nil
}

// CachePurgeAction clears the OCR cache.
func CachePurgeAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	cache, err := ocrcache.New(cfg.CacheDir, time.Duration(cfg.CacheTTL))
	if err != nil {
		return fmt.Errorf("failed to open OCR cache: %w", err)
	}

	removed, err := cache.Purge()
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d cache entries from %s\n", removed, cfg.CacheDir)
	return nil
}
