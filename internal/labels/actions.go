// Package labels implements the "labels" command group: maintenance of the
// ground-truth corpus the evaluator runs against.
package labels

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/screensift/internal/common"
	"github.com/dtnitsch/screensift/models"
	"github.com/dtnitsch/screensift/pkg/db"
	"github.com/dtnitsch/screensift/pkg/dedup"
	"github.com/dtnitsch/screensift/pkg/textstats"
)

// AddAction labels one screenshot, hashing it and warning when it is
// perceptually near an already-labelled image.
func AddAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	imagePath, err := common.ResolveImagePath(c.String("image"))
	if err != nil {
		return err
	}

	trueLabel, err := models.ParseItemType(c.String("label"))
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	hashHex := ""
	hash, err := dedup.HashImage(imagePath)
	if err != nil {
		// Unhashable images are still labelable; dedup just can't see them.
		logger.Warn("Failed to hash image", "image", imagePath, "error", err)
	} else {
		hashHex = dedup.HashHex(hash)

		entries, err := loadHashedEntries(database, imagePath)
		if err != nil {
			return err
		}
		if match, dist := dedup.FindNearDuplicate(hash, entries, c.Int("distance")); match != nil && !c.Bool("force") {
			return fmt.Errorf("%s looks like a duplicate of labelled image %s (distance %d); use --force to label anyway",
				imagePath, match.Path, dist)
		}
	}

	if err := database.UpsertLabel(imagePath, trueLabel, hashHex); err != nil {
		return err
	}

	fmt.Printf("Labelled %s as %s\n", imagePath, trueLabel)
	return nil
}

// ListAction prints the labelled corpus, optionally filtered by category.
func ListAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var filter *models.ItemType
	if labelStr := c.String("label"); labelStr != "" {
		label, err := models.ParseItemType(labelStr)
		if err != nil {
			return err
		}
		filter = &label
	}

	entries, err := database.ListLabels(filter)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No labels found in %s\n", database.Path())
		return nil
	}

	for _, label := range entries {
		fmt.Printf("%-8s  %s\n", label.TrueLabel, label.ImagePath)
	}

	counts, err := database.CountLabels()
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d", len(entries))
	for _, t := range models.AllItemTypes() {
		if counts[t] > 0 {
			fmt.Printf("  %s: %d", t, counts[t])
		}
	}
	fmt.Println()
	return nil
}

// ImportAction ingests a labels CSV ("image_path,true_label" with header).
func ImportAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	csvPath := c.String("csv")
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV %s: %w", csvPath, err)
	}
	defer f.Close()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	imported, skipped, err := importLabels(logger, database, csv.NewReader(f))
	if err != nil {
		return fmt.Errorf("failed to read CSV %s: %w", csvPath, err)
	}

	fmt.Printf("Imported %d labels (%d skipped) from %s\n", imported, skipped, csvPath)
	return nil
}

// importLabels upserts labels row by row. Bad rows (wrong field count,
// unknown label) are warned about and skipped, never fatal, so one typo does
// not abort a half-applied import.
func importLabels(logger *slog.Logger, database *db.DB, reader *csv.Reader) (imported, skipped int, err error) {
	reader.FieldsPerRecord = -1

	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, err
		}

		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "image_path") {
				continue // header row
			}
		}

		if len(record) != 2 {
			logger.Warn("Skipping row with wrong field count", "row", record[0], "fields", len(record))
			skipped++
			continue
		}

		imagePath := strings.TrimSpace(record[0])
		trueLabel, err := models.ParseItemType(strings.ToLower(strings.TrimSpace(record[1])))
		if err != nil {
			logger.Warn("Skipping row with invalid label", "image", imagePath, "label", record[1])
			skipped++
			continue
		}

		hashHex := ""
		if hash, err := dedup.HashImage(imagePath); err == nil {
			hashHex = dedup.HashHex(hash)
		}

		if err := database.UpsertLabel(imagePath, trueLabel, hashHex); err != nil {
			return imported, skipped, err
		}
		imported++
	}

	return imported, skipped, nil
}

// DedupAction scans the labelled corpus for perceptual near-duplicates.
func DedupAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	entries, err := loadHashedEntries(database, "")
	if err != nil {
		return err
	}

	matches := dedup.FindNearDuplicates(entries, c.Int("distance"))
	if len(matches) == 0 {
		fmt.Println("No near-duplicates found")
		return nil
	}

	for _, m := range matches {
		fmt.Printf("distance %2d  %s <-> %s\n", m.Distance, m.PathA, m.PathB)
	}
	fmt.Printf("\n%d near-duplicate pairs\n", len(matches))
	return nil
}

// KeywordsAction prints the dominant OCR vocabulary per category, using
// cached OCR text. Images without cached text are skipped; run eval or ocr
// first to populate the cache.
func KeywordsAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
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

	runner, closer, err := common.NewRunner(logger, cfg, false)
	if err != nil {
		return err
	}
	defer closer()

	top := c.Int("top")
	perCategory := make(map[models.ItemType][]map[string]int)
	skipped := 0
	for _, label := range entries {
		ocrResult, err := runner.Run(label.ImagePath)
		if err != nil {
			skipped++
			continue
		}
		perCategory[label.TrueLabel] = append(perCategory[label.TrueLabel], textstats.Frequencies(ocrResult.FullText))
	}

	for _, category := range models.AllItemTypes() {
		docs := perCategory[category]
		if len(docs) == 0 {
			continue
		}
		fmt.Printf("%s (%d images)\n", category, len(docs))
		for _, kw := range textstats.Top(textstats.Merge(docs), top) {
			fmt.Printf("  %-20s %d\n", kw.Word, kw.Count)
		}
		fmt.Println()
	}

	if skipped > 0 {
		fmt.Printf("%d images skipped (no OCR text available)\n", skipped)
	}
	return nil
}

// loadHashedEntries pulls every stored label hash, skipping excludePath and
// rows without a usable hash.
func loadHashedEntries(database *db.DB, excludePath string) ([]dedup.Entry, error) {
	stored, err := database.ListLabels(nil)
	if err != nil {
		return nil, err
	}

	entries := make([]dedup.Entry, 0, len(stored))
	for _, label := range stored {
		if label.ImageHash == "" || label.ImagePath == excludePath {
			continue
		}
		hash, err := dedup.ParseHashHex(label.ImageHash)
		if err != nil {
			continue
		}
		entries = append(entries, dedup.Entry{Path: label.ImagePath, Hash: hash})
	}
	return entries, nil
}
