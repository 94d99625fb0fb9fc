package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/semvocab/export"
	"github.com/c360studio/semvocab/source"
	"github.com/c360studio/semvocab/vocab"
)

// buildOptions controls where and how vocabularies are built.
type buildOptions struct {
	outDir  string
	formats []export.Format
	date    time.Time
}

func buildCmd(a *app) *cobra.Command {
	var (
		outDir  string
		formats []string
		date    string
	)

	cmd := &cobra.Command{
		Use:   "build [patterns...]",
		Short: "Build vocabulary files",
		Long: `Build every YAML vocabulary matched by the given files, directories or
glob patterns (doublestar syntax, e.g. "vocab/**/*.yml").

For foo.yml the outputs are foo.ttl, foo.jsonld, foo.html and
foo.context.jsonld. An input that fails to build writes nothing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.buildOptions(cmd, outDir, formats, date)
			if err != nil {
				return err
			}
			return buildAll(args, opts, a.logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: next to each input)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Output format, repeatable (turtle, jsonld, html, context)")
	cmd.Flags().StringVar(&date, "date", "", "Fixed dc:date (YYYY-MM-DD)")

	return cmd
}

// buildOptions merges command flags over the loaded config.
func (a *app) buildOptions(cmd *cobra.Command, outDir string, formats []string, date string) (buildOptions, error) {
	cfg := *a.cfg
	if cmd.Flags().Changed("out") {
		cfg.Output.Dir = outDir
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Formats = formats
	}
	if cmd.Flags().Changed("date") {
		cfg.Build.Date = date
	}

	selected, err := cfg.OutputFormats()
	if err != nil {
		return buildOptions{}, err
	}
	d, err := cfg.BuildDate()
	if err != nil {
		return buildOptions{}, err
	}
	return buildOptions{outDir: cfg.Output.Dir, formats: selected, date: d}, nil
}

// buildAll builds every file matched by patterns. Failing inputs do not
// stop the others; their errors are joined.
func buildAll(patterns []string, opts buildOptions, logger *slog.Logger, out io.Writer) error {
	files, err := source.Expand(patterns)
	if err != nil {
		return err
	}

	var errs []error
	for _, path := range files {
		written, err := buildFile(path, opts, logger)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		for _, w := range written {
			fmt.Fprintf(out, "wrote %s\n", w)
		}
	}
	return errors.Join(errs...)
}

// buildFile builds one input and writes its outputs. All outputs are
// rendered before the first file is written.
func buildFile(path string, opts buildOptions, logger *slog.Logger) ([]string, error) {
	raw, err := source.LoadFile(path)
	if err != nil {
		return nil, err
	}

	v, err := vocab.NewBuilder(vocab.WithLogger(logger), vocab.WithDate(opts.date)).Build(raw)
	if err != nil {
		return nil, err
	}

	rendered := make(map[string][]byte, len(opts.formats))
	paths := make([]string, 0, len(opts.formats))
	for _, f := range opts.formats {
		data, err := export.Render(v, f)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		p, err := outputPath(path, opts.outDir, f)
		if err != nil {
			return nil, err
		}
		rendered[p] = data
		paths = append(paths, p)
	}

	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	for _, p := range paths {
		if err := os.WriteFile(p, rendered[p], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
	}

	logger.Info("Built vocabulary",
		"input", path,
		"vocab", v.Prefix,
		"classes", len(v.Classes),
		"properties", len(v.Properties),
		"individuals", len(v.Individuals),
		"datatypes", len(v.Datatypes))
	return paths, nil
}

// outputPath maps an input file and format to its output file.
func outputPath(input, outDir string, f export.Format) (string, error) {
	info, ok := export.GetFormatInfo(f)
	if !ok {
		return "", fmt.Errorf("unsupported format: %s", f)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := filepath.Dir(input)
	if outDir != "" {
		dir = outDir
	}
	return filepath.Join(dir, base+info.Extension), nil
}
