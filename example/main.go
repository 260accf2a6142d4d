package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/pdfoutline"
)

func main() {
	cmd := &cli.Command{
		Name:  "pdfoutline",
		Usage: "Infer the outline of a single PDF file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Input PDF file path",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output JSON file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Force a language pack (e.g. zh, es) instead of detecting",
			},
		},
		Action: outlinePDF,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func outlinePDF(_ context.Context, cmd *cli.Command) error {
	inputPath := cmd.String("input")
	outputPath := cmd.String("output")

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	config := pdfoutline.DefaultConfig()
	config.Language = cmd.String("language")

	engine := pdfoutline.NewEngineWithConfig(instance, config)

	// Get document info
	info, err := engine.GetDocumentInfo(inputPath)
	if err != nil {
		return fmt.Errorf("failed to get document info: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processing PDF with %d pages...\n", info.PageCount)

	outline, err := engine.OutlineFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to infer outline: %w", err)
	}

	// Write output
	if outputPath != "" {
		if err := pdfoutline.WriteOutlineFile(outputPath, outline); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Outline written to %s\n", outputPath)
	} else {
		if err := pdfoutline.WriteOutline(os.Stdout, outline); err != nil {
			return fmt.Errorf("failed to write outline: %w", err)
		}
	}

	return nil
}
