// screensift classifies phone screenshots into recipe, workout, quote or
// none using hand-tuned lexical and layout heuristics over OCR text.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/screensift/internal/classify"
	"github.com/dtnitsch/screensift/internal/evaluate"
	"github.com/dtnitsch/screensift/internal/labels"
	"github.com/dtnitsch/screensift/pkg/dedup"
	"github.com/dtnitsch/screensift/pkg/heuristics"
)

func main() {
	app := &cli.App{
		Name:  "screensift",
		Usage: "heuristic screenshot classifier (recipe / workout / quote)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "screensift.yaml",
				Usage: "path to YAML config file (missing file uses defaults)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the SQLite database (overrides config)",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "OCR cache directory (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "classify",
				Usage: "classify one screenshot",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "screenshot to classify"},
					&cli.StringFlag{Name: "text", Usage: "classify a pre-extracted text file instead of an image"},
					&cli.Float64Flag{Name: "threshold", Value: heuristics.DefaultThreshold, Usage: "minimum winning score"},
					&cli.BoolFlag{Name: "json", Usage: "emit JSON"},
					&cli.BoolFlag{Name: "no-cache", Usage: "bypass the OCR cache"},
				},
				Action: classify.ClassifyAction,
			},
			{
				Name:  "ocr",
				Usage: "run OCR on a screenshot and print the text",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "screenshot to recognize"},
					&cli.BoolFlag{Name: "json", Usage: "emit JSON"},
					&cli.BoolFlag{Name: "no-cache", Usage: "bypass the OCR cache"},
				},
				Action: classify.OcrAction,
				Subcommands: []*cli.Command{
					{
						Name:   "purge",
						Usage:  "remove all cached OCR results",
						Action: classify.CachePurgeAction,
					},
				},
			},
			{
				Name:  "labels",
				Usage: "maintain the labelled screenshot corpus",
				Subcommands: []*cli.Command{
					{
						Name:  "add",
						Usage: "label a screenshot",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Required: true},
							&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Required: true, Usage: "recipe, workout, quote or none"},
							&cli.IntFlag{Name: "distance", Value: dedup.DefaultMaxDistance, Usage: "near-duplicate Hamming distance"},
							&cli.BoolFlag{Name: "force", Usage: "label even if a near-duplicate exists"},
						},
						Action: labels.AddAction,
					},
					{
						Name:  "list",
						Usage: "list labelled screenshots",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Usage: "filter by category"},
						},
						Action: labels.ListAction,
					},
					{
						Name:  "import",
						Usage: "import a labels CSV (image_path,true_label)",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "csv", Required: true},
						},
						Action: labels.ImportAction,
					},
					{
						Name:  "dedup",
						Usage: "find perceptual near-duplicates in the corpus",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "distance", Value: dedup.DefaultMaxDistance, Usage: "near-duplicate Hamming distance"},
						},
						Action: labels.DedupAction,
					},
					{
						Name:  "keywords",
						Usage: "show dominant OCR vocabulary per category",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "top", Value: 15, Usage: "keywords per category"},
						},
						Action: labels.KeywordsAction,
					},
				},
			},
			{
				Name:  "eval",
				Usage: "evaluate the classifier against the labelled corpus",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "threshold", Value: heuristics.DefaultThreshold, Usage: "minimum winning score"},
					&cli.IntFlag{Name: "workers", Usage: "concurrent evaluation workers"},
					&cli.BoolFlag{Name: "json", Usage: "emit JSON"},
				},
				Action: evaluate.EvalAction,
			},
			{
				Name:  "runs",
				Usage: "list past evaluation runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20},
				},
				Action: evaluate.RunsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
