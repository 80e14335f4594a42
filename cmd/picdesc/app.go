package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"picdesc/internal/config"
	"picdesc/internal/docling"
	"picdesc/internal/domain"
	"picdesc/internal/export"
	"picdesc/internal/logging"
	"picdesc/internal/pipeline"
)

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:    "picdesc",
		Usage:   "Describe the pictures of PDF documents with a vision-language model",
		Version: Version,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"PICDESC_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "console",
				Usage:   "Log format (console or json)",
				EnvVars: []string{"PICDESC_LOG_FORMAT"},
			},
		},
		Before: func(c *cli.Context) error {
			logging.SetupWriter(&config.LogConfig{
				Level:  c.String("log-level"),
				Format: c.String("log-format"),
			}, os.Stderr)
			return nil
		},
		Commands: []*cli.Command{
			describeCommand(),
			checkCommand(),
			versionCommand(),
		},
	}
}

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Convert a PDF and write its picture descriptions",
		ArgsUsage: "<file.pdf>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path; \"-\" for stdout (default: <name>_annotations.<format>)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "json",
				Usage:   "Output format (json, csv, xlsx)",
			},
			&cli.StringFlag{Name: "model", Usage: "Override the vision-language model repo id"},
			&cli.StringFlag{Name: "prompt", Usage: "Override the description prompt"},
		},
		Action: runDescribe,
	}
}

func runDescribe(c *cli.Context) error {
	source := c.Args().First()
	if source == "" {
		return errors.New("describe requires a PDF path")
	}
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	conv, err := converterFor(c)
	if err != nil {
		return err
	}

	start := time.Now()
	doc, err := pipeline.Convert(c.Context, source, conv)
	if err != nil {
		return err
	}
	out := pipeline.BuildOutput(doc, time.Since(start).Seconds())

	log.WithFields(log.Fields{
		"pictures":   out.DocumentInfo.NumPictures,
		"duration_s": out.DocumentInfo.TotalDurationS,
	}).Info("document described")

	dest := c.String("output")
	if dest == "" {
		dest = domain.ExportFileName(source, format)
	}
	if dest == "-" {
		return export.Render(c.App.Writer, &out, format)
	}
	if err := writeFile(dest, &out, format); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d picture(s) described in %.2fs, written to %s\n",
		out.DocumentInfo.NumPictures, out.DocumentInfo.TotalDurationS, dest)
	return nil
}

// converterFor returns nil, selecting the process-wide converter, unless the
// command line overrides a pipeline setting.
func converterFor(c *cli.Context) (*pipeline.Converter, error) {
	if !c.IsSet("model") && !c.IsSet("prompt") {
		return nil, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	opts := []pipeline.Option{pipeline.WithOptions(pipeline.OptionsFromConfig(&cfg.Pipeline))}
	if c.IsSet("model") {
		opts = append(opts, pipeline.WithModel(c.String("model")))
	}
	if c.IsSet("prompt") {
		opts = append(opts, pipeline.WithPrompt(c.String("prompt")))
	}
	return pipeline.CreateConverter(docling.NewClient(&cfg.Docling), opts...), nil
}

func writeFile(path string, out *domain.Output, format domain.ExportFormat) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err := export.Render(w, out, format); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return w.Flush()
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check a PDF against the configured page and size limits",
		ArgsUsage: "<file.pdf>",
		Action: func(c *cli.Context) error {
			source := c.Args().First()
			if source == "" {
				return errors.New("check requires a PDF path")
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			report, err := pipeline.CheckLimits(source, cfg.Pipeline.MaxPages, cfg.Pipeline.MaxFileSizeBytes)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "ok: %d page(s), %.2f MB (limits: %d pages, %.2f MB)\n",
				report.Pages, float64(report.SizeBytes)/(1024*1024),
				cfg.Pipeline.MaxPages, float64(cfg.Pipeline.MaxFileSizeBytes)/(1024*1024))
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, c.App.Version)
			return nil
		},
	}
}
