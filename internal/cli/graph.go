package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/internal/config"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/dag"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
	pkgio "github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/io"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/render/dot"
)

// Graph output formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

var graphFormats = []string{formatDOT, formatSVG, formatJSON}

type graphOptions struct {
	format   string
	output   string
	detailed bool
}

// graphCommand creates the graph command, which exports the dependency graph
// of the main library.
func (c *CLI) graphCommand() *cobra.Command {
	var fc config.Config
	opts := graphOptions{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph of a VaM folder",
		Long: `Graph writes the dependencies between installed packages, presets and
missing packages as Graphviz DOT, SVG or JSON. Dependency cycles are
reported as warnings and drawn in red.`,
		Example: `  varscan graph -p D:/VaM > deps.dot
  varscan graph -p D:/VaM --format svg -o deps.svg`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range graphFormats {
				if opts.format == f {
					return nil
				}
			}
			return errors.New(errors.ErrCodeInvalidConfig, "unknown graph format %q (want %s)", opts.format, strings.Join(graphFormats, ", "))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &fc)
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fc.Path, "path", "p", ".", "path to your VaM folder")
	f.StringVar(&opts.format, "format", opts.format, "output format: "+strings.Join(graphFormats, ", "))
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	f.BoolVar(&opts.detailed, "detailed", false, "include package metadata in node labels")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, cfg config.Config, opts graphOptions) error {
	logger := loggerFromContext(ctx)
	p := newPrinter(c.Err)

	prog := newProgress(logger)
	ix, err := library.Scan(ctx, os.DirFS(cfg.Path), library.Options{Root: cfg.Path, Logger: logger})
	if err != nil {
		return err
	}
	g, err := dag.FromIndex(ix)
	if err != nil {
		logger.Warn("some nodes were left out of the graph", "err", err)
	}
	cycles := dag.FindCycles(g)
	for _, cyc := range cycles {
		logger.Warn("dependency cycle", "packages", strings.Join(cyc, " -> ")+" -> "+cyc[0])
	}
	prog.done(fmt.Sprintf("Built graph with %d nodes and %d edges", g.NodeCount(), g.EdgeCount()))

	var data []byte
	switch opts.format {
	case formatJSON:
		var buf strings.Builder
		if err := pkgio.WriteGraph(g, &buf); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
		}
		data = []byte(buf.String())
	case formatDOT:
		data = []byte(dot.ToDOT(g, dot.Options{Detailed: opts.detailed, Cycles: cycles}))
	case formatSVG:
		src := dot.ToDOT(g, dot.Options{Detailed: opts.detailed, Cycles: cycles})
		spin := newSpinner(ctx, c.Err, "Rendering SVG...")
		spin.Start()
		data, err = dot.RenderSVG(ctx, src)
		spin.Stop()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
		}
	}

	if opts.output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	return writeGraphFile(p, opts.output, data)
}

func writeGraphFile(p *printer, path string, data []byte) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve path %s", path)
	}
	f, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	p.success("Wrote %d bytes", len(data))
	p.fileLine("Graph saved to", path)
	return nil
}
