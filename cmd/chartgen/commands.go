package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/recruit/internal/adapters/render/svg"
	app "github.com/okian/recruit/internal/app"
	"github.com/okian/recruit/internal/domain/chart"
	"github.com/okian/recruit/pkg/logger"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	formatSVG  = "svg"
	formatJSON = "json"
)

var errFormat = errors.New("format must be svg or json")

type options struct {
	maxPoints int
	format    string
	output    string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "chartgen",
		Short: "Render recruitment dashboard charts",
		Long: `chartgen renders bar and pie charts from JSON series files.

Input files hold {"points": [...]} in the same shape the HTTP chart
endpoints accept. Use "-" to read from stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.format != formatSVG && opts.format != formatJSON {
				return fmt.Errorf("%w, got %q", errFormat, opts.format)
			}
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			return logger.SetLevelString(level)
		},
	}
	root.PersistentFlags().IntVar(&opts.maxPoints, "max-points", 500, "maximum points per series")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg or json")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "output file or directory (default: stdout, or . for sample)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")

	root.AddCommand(newBarCmd(opts), newPieCmd(opts), newSampleCmd(opts))
	return root
}

func newService(opts *options) *app.Service {
	return app.New(app.WithMaxPoints(opts.maxPoints), app.WithLogger(logger.Named("chartgen")))
}

func newBarCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bar <series.json>",
		Short: "Render a bar chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in struct {
				Points []chart.BarPoint `json:"points"`
			}
			if err := readSeries(cmd.InOrStdin(), args[0], &in); err != nil {
				return err
			}
			c, err := newService(opts).RenderBar(cmd.Context(), in.Points)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), opts, c, c.Drawing)
		},
	}
}

func newPieCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pie <series.json>",
		Short: "Render a pie chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in struct {
				Points []chart.PiePoint `json:"points"`
			}
			if err := readSeries(cmd.InOrStdin(), args[0], &in); err != nil {
				return err
			}
			c, err := newService(opts).RenderPie(cmd.Context(), in.Points)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), opts, c, c.Drawing)
		},
	}
}

func newSampleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Write the dashboard's sample charts into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := opts.output
			if dir == "" {
				dir = "."
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			written, err := writeSamples(cmd.Context(), newService(opts), dir, opts.format)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}

func writeSamples(ctx context.Context, svc *app.Service, dir, format string) ([]string, error) {
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	bar, err := svc.RenderBar(ctx, snap.Applications)
	if err != nil {
		return nil, err
	}
	pie, err := svc.RenderPie(ctx, snap.Pipeline)
	if err != nil {
		return nil, err
	}

	charts := []struct {
		name     string
		geometry any
		drawing  chart.Drawing
	}{
		{"applications", bar, bar.Drawing},
		{"pipeline", pie, pie.Drawing},
	}
	written := make([]string, 0, len(charts))
	for _, c := range charts {
		var buf bytes.Buffer
		if err := encode(&buf, format, c.geometry, c.drawing); err != nil {
			return written, err
		}
		path := filepath.Join(dir, c.name+"."+format)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func readSeries(stdin io.Reader, name string, v any) error {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open series: %w", err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// emit writes to --output when set, otherwise to stdout.
func emit(stdout io.Writer, opts *options, geometry any, d chart.Drawing) error {
	var buf bytes.Buffer
	if err := encode(&buf, opts.format, geometry, d); err != nil {
		return err
	}
	if opts.output == "" {
		_, err := buf.WriteTo(stdout)
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	return nil
}

func encode(w io.Writer, format string, geometry any, d chart.Drawing) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(geometry)
	}
	if err := svg.Render(w, d); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
