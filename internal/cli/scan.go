package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/internal/config"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
	pkgio "github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/io"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/library"
	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/resolve"
)

// scanCommand creates the scan command, the default varscan workflow.
func (c *CLI) scanCommand() *cobra.Command {
	var fc config.Config

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List unused packages and find missing dependencies",
		Long: `Scan reads every .var package under <path>/AddonPackages and every preset
under <path>/Custom.

Without --name it lists the packages no other package or preset depends on.
With --name it lists the unused packages whose name contains the given text,
and every dependency containing it together with what requires it.

With --source it first checks every dependency against the installed
packages and then against the .var files below the source folder, reporting
what is missing and, with --copy-found, copying what was found to --dest.`,
		Example: `  varscan scan -p D:/VaM
  varscan scan -p D:/VaM -n Alice.Hair
  varscan scan -p D:/VaM -s E:/archive -m
  varscan scan -p D:/VaM -s E:/archive -c -d D:/VaM/AddonPackages/restored -o
  varscan scan -p D:/VaM --output=unused.txt --json=unused.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &fc)
			if err != nil {
				return err
			}
			return c.runScan(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fc.Path, "path", "p", ".", "path to your VaM folder")
	f.StringVarP(&fc.Source, "source", "s", "", "source folder with extra .var files to check for missing references")
	f.StringVarP(&fc.Name, "name", "n", "", "name of a var file, can be a partial name")
	f.StringVarP(&fc.Output, "output", "o", "", "file to save the results in (default \""+config.DefaultOutput+"\" when given without a value)")
	f.Lookup("output").NoOptDefVal = config.DefaultOutput
	f.BoolVarP(&fc.MissingOnly, "missing-only", "m", false, "only show missing references")
	f.StringVarP(&fc.Dest, "dest", "d", "", "destination folder to copy found dependencies to")
	f.BoolVarP(&fc.CopyFound, "copy-found", "c", false, "copy found dependencies to the destination folder")
	f.BoolVar(&fc.Strict, "strict", false, "do not substitute another version when the requested one is missing")
	f.StringVar(&fc.JSON, "json", "", "also write the results as JSON to this file")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, cfg config.Config) error {
	p := newPrinter(c.Out)
	logger := loggerFromContext(ctx)
	if cfg.Output != "" {
		f, err := openOutput(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		p.tee(f)
		logger = teeLogger(logger, c.Err, f)
	}

	runID := uuid.NewString()
	logger.Debug("starting dependency scan",
		"run_id", runID,
		"path", cfg.Path,
		"source", cfg.Source,
		"name", cfg.Name,
		"output", cfg.Output,
		"missing_only", cfg.MissingOnly,
		"dest", cfg.CopyDest(),
		"strict", cfg.Strict,
	)

	prog := newProgress(logger)
	lib, err := library.Scan(ctx, os.DirFS(cfg.Path), library.Options{Root: cfg.Path, Logger: logger})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d var files and %d presets", len(lib.Packages), len(lib.PresetFiles)))

	var pool *library.Pool
	res := &resolve.Result{}
	if cfg.Source != "" {
		p.info("Checking for missing references...")
		prog = newProgress(logger)
		pool, err = library.ScanPool(ctx, os.DirFS(cfg.Source), library.Options{Root: cfg.Source, Logger: logger})
		if err != nil {
			return err
		}
		r := resolve.New(resolve.Options{Dest: cfg.CopyDest(), Strict: cfg.Strict, Logger: logger})
		res, err = r.Resolve(ctx, lib, pool)
		if err != nil {
			return err
		}
		prog.done("Checked dependencies")
		printResolution(p, res, pool, cfg)
	}

	if cfg.JSON != "" {
		report := pkgio.NewReport(runID, lib, pool, res)
		report.Strict = cfg.Strict
		if err := pkgio.ExportReport(report, cfg.JSON); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write report %s", cfg.JSON)
		}
		logger.Info("Wrote JSON report", "file", cfg.JSON, "run_id", runID)
	}

	if cfg.Source == "" || !cfg.MissingOnly {
		printUsage(p, lib, cfg.Name)
	}

	if cfg.Output != "" {
		fmt.Fprintln(c.Out)
		p.fileLine("Results saved to", cfg.Output)
	}
	if cfg.JSON != "" {
		p.fileLine("JSON report saved to", cfg.JSON)
	}
	return nil
}

// openOutput creates or truncates the report file, creating its directory.
func openOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output file %s", path)
	}
	return f, nil
}

// printResolution prints the missing dependencies, and in verbose mode the
// satisfied and found ones.
func printResolution(p *printer, res *resolve.Result, pool *library.Pool, cfg config.Config) {
	if len(res.Missing) == 0 {
		p.success("No missing references found.")
	} else {
		p.blank()
		p.title("Found %d missing references:", len(res.Missing))
		for _, m := range resolve.Sorted(res.Missing) {
			p.missing("Missing: %s", m.Name)
			p.detail("Required by:")
			for _, d := range m.Dependents {
				p.dependent(d)
			}
			p.blank()
		}
	}

	for _, s := range res.Substitutions() {
		p.warning("%s is not available, using %s instead", s.Name, s.Match.Candidate.ID)
	}

	copied := 0
	for _, r := range resolve.Sorted(res.Resolved) {
		switch {
		case r.Copied && r.CopyErr != nil:
			p.warning("Copied %s: %s", r.Match.Candidate.ID, errors.UserMessage(r.CopyErr))
		case r.CopyErr != nil:
			p.errorf("Failed to copy %s: %s", r.Match.Candidate.ID, errors.UserMessage(r.CopyErr))
		}
		if r.Copied {
			copied++
		}
	}
	if dest := cfg.CopyDest(); dest != "" {
		p.info("Copied %d dependencies to: %s", copied, dest)
	}

	if !cfg.Verbose {
		return
	}
	if len(res.Satisfied) > 0 {
		p.blank()
		p.title("Already satisfied dependencies:")
		for _, s := range resolve.Sorted(res.Satisfied) {
			p.line(fmt.Sprintf("  %s (satisfied by: %s)", s.Name, s.SatisfiedBy))
		}
	}
	if len(res.Resolved) > 0 {
		p.blank()
		p.title("Found %d references:", len(res.Resolved))
		for _, r := range resolve.Sorted(res.Resolved) {
			p.line("  Found: " + r.Name)
			p.detail("Source: %s", filepath.Join(pool.Root, filepath.FromSlash(r.Match.Candidate.Path)))
			p.detail("Required by:")
			for _, d := range r.Dependents {
				p.dependent(d)
			}
			p.blank()
		}
	}
}

// printUsage prints the unused packages, or the answer to a name query.
func printUsage(p *printer, ix *library.Index, name string) {
	if name == "" {
		unused := ix.Unreferenced()
		p.title("%d vars are not used as a dependency:", len(unused))
		for _, id := range unused {
			p.item(id)
		}
		return
	}

	q := ix.Query(name)
	if n := len(q.Unused); n > 0 {
		if n == 1 {
			p.title("The following var is not used as a dependency in other vars:")
		} else {
			p.title("The following %d vars are not used as a dependency in other vars:", n)
		}
		for _, id := range q.Unused {
			p.item(id)
		}
	}

	if n := len(q.Dependencies); n > 0 {
		p.blank()
		plural := ""
		if n > 1 {
			plural = "s"
		}
		p.title("The following %d iteration%s of '%s' has other vars that depend on it:", n, plural, q.Name)
		for _, dep := range q.Dependencies {
			if dep.Name != q.Name {
				p.line(dep.Name + " ->")
			}
			for _, d := range dep.Dependents {
				p.item(d)
			}
		}
	}

	if q.Empty() {
		p.warning("No vars match '%s'", q.Name)
		if s := suggest(q.Name, suggestionPool(ix), maxSuggestions); len(s) > 0 {
			p.detail("Did you mean: %s", strings.Join(s, ", "))
		}
	}
}
