package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/urfave/cli/v3"

	"github.com/ivanvanderbyl/pdfoutline"
)

func main() {
	// A .env file in the working directory feeds both flag env sources and
	// the PDFOUTLINE_* config overrides
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "pdfoutline",
		Usage: "Infer document outlines from PDF files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Input PDF file or directory of PDF files",
				Value:   defaultDir("input"),
				Sources: cli.EnvVars("PDFOUTLINE_INPUT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for outline JSON files (default: stdout for a single file)",
				Sources: cli.EnvVars("PDFOUTLINE_OUTPUT"),
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "Number of documents processed concurrently (0 = auto)",
				Sources: cli.EnvVars("PDFOUTLINE_WORKERS"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Per-document processing deadline (0 = none)",
				Value:   30 * time.Second,
				Sources: cli.EnvVars("PDFOUTLINE_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				Sources: cli.EnvVars("PDFOUTLINE_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Log per-document processing metrics",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load additional environment overrides from this file",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	inputPath := cmd.String("input")
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read input path %s: %w", inputPath, err)
	}

	workers := int(cmd.Int("workers"))
	poolSize := workers
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
		if poolSize > 4 {
			poolSize = 4
		}
	}

	// Initialise pdfium
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  poolSize,
		MaxTotal: poolSize,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise pdfium: %w", err)
	}
	defer pool.Close()

	if !info.IsDir() {
		return runSingle(pool, config, inputPath, cmd.String("output"))
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = defaultDir("output")
	}

	process := func(_ context.Context, path string) (*pdfoutline.Outline, error) {
		instance, err := pool.GetInstance(time.Second * 30)
		if err != nil {
			return nil, fmt.Errorf("failed to get pdfium instance: %w", err)
		}
		defer instance.Close()

		engine := pdfoutline.NewEngineWithConfig(instance, config)
		return engine.OutlineFile(path)
	}

	batch := pdfoutline.NewBatchProcessor(process, pdfoutline.BatchOptions{
		Workers:   workers,
		Timeout:   cmd.Duration("timeout"),
		OutputDir: outputDir,
	})

	summary, err := batch.Process(ctx, inputPath)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d documents failed", summary.Failed, summary.Total), 1)
	}

	return nil
}

// runSingle processes one document, writing JSON to stdout unless an output
// directory was given.
func runSingle(pool pdfium.Pool, config pdfoutline.Config, inputPath, outputDir string) error {
	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		return fmt.Errorf("failed to get pdfium instance: %w", err)
	}
	defer instance.Close()

	engine := pdfoutline.NewEngineWithConfig(instance, config)
	outline, err := engine.OutlineFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to process PDF: %w", err)
	}

	if outputDir == "" {
		return pdfoutline.WriteOutline(os.Stdout, outline)
	}

	outPath := pdfoutline.OutputPath(inputPath, outputDir)
	if err := pdfoutline.WriteOutlineFile(outPath, outline); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Outline written to %s\n", outPath)
	return nil
}

// loadConfig assembles the engine configuration from defaults, an optional
// YAML file, and environment overrides, in that order.
func loadConfig(cmd *cli.Command) (pdfoutline.Config, error) {
	config := pdfoutline.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := pdfoutline.LoadConfig(path)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if envFile := cmd.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Warning: could not load env file %s: %v", envFile, err)
		}
	}
	config.ApplyEnv()

	if cmd.Bool("metrics") {
		config.EnableMetricsLogging = true
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// defaultDir resolves the conventional container path when present, falling
// back to a relative directory for local runs.
func defaultDir(name string) string {
	containerPath := "/app/" + name
	if _, err := os.Stat(containerPath); err == nil {
		return containerPath
	}
	return "./" + name
}
