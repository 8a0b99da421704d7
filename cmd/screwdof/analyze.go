package main

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/screwdof/mechfile"
	"github.com/katalvlaran/screwdof/mobility"
	"github.com/katalvlaran/screwdof/report"
)

// analyzeFlags are the flags of analyze and spectrum.
type analyzeFlags struct {
	jobs       int
	format     string
	velocities bool
	maxRows    int
	tol        mobility.Tolerances
}

// bindTolerances registers one flag per numeric option. Unset flags stay
// zero and keep the file's (or the default) value.
func bindTolerances(fs *pflag.FlagSet, t *mobility.Tolerances) {
	fs.Float64Var(&t.ZeroTol, "zero-tol", 0, "near-zero singular value threshold (default 1e-9)")
	fs.Float64Var(&t.GapThreshold, "gap-threshold", 0, "minimum significant spectral ratio (default 1e3)")
	fs.Float64Var(&t.FreedomCeiling, "freedom-ceiling", 0, "largest singular value of a freedom (default 1e-6)")
	fs.Float64Var(&t.IDOFEps, "idof-eps", 0, "perturbation scale of the instantaneous-mode test (default 1e-4)")
	fs.Float64Var(&t.IDOFBand, "idof-band", 0, "near-null band after perturbation (default 1e-6)")
	fs.Float64Var(&t.AxisTol, "axis-tol", 0, "zero/parallel tolerance of the motion classifier (default 1e-6)")
	fs.Float64Var(&t.PointTol, "point-tol", 0, "common-point residual tolerance (default 1e-6)")
}

func (c *cli) analyzeCmd() *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Analyze one or more mechanism files",
		Long: `Analyzes every file concurrently (bounded by --jobs) and prints the reports
in argument order. A failing file is reported and does not stop the others;
the command exits non-zero when any file failed.

Tolerance flags override settings.tolerances of each file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch f.format {
			case "text", "yaml":
			default:
				return fmt.Errorf("unknown --format %q (want text or yaml)", f.format)
			}
			return c.runAnalyze(cmd, args, f)
		},
	}
	fs := cmd.Flags()
	fs.IntVarP(&f.jobs, "jobs", "j", runtime.NumCPU(), "files analyzed in parallel")
	fs.StringVarP(&f.format, "format", "f", "text", "output format: text or yaml")
	fs.BoolVar(&f.velocities, "velocities", false, "append the joint-velocity debugger (text format)")
	fs.IntVar(&f.maxRows, "max-rows", 0, "spectrum rows shown; 0 = max(10, dof+3)")
	bindTolerances(fs, &f.tol)
	return cmd
}

func (c *cli) spectrumCmd() *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "spectrum FILE",
		Short: "Print only the singular spectrum of a mechanism",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := c.analyzeFile(args[0], f.tol)
			if err != nil {
				return err
			}
			return report.Spectrum(cmd.OutOrStdout(), res, report.WithMaxRows(f.maxRows))
		},
	}
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "spectrum rows shown; 0 = max(10, dof+3)")
	bindTolerances(cmd.Flags(), &f.tol)
	return cmd
}

// runAnalyze fans the files out over an errgroup and prints the buffered
// reports in argument order.
func (c *cli) runAnalyze(cmd *cobra.Command, files []string, f *analyzeFlags) error {
	outs := make([]bytes.Buffer, len(files))
	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, f.jobs))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			res, name, err := c.analyzeFile(file, f.tol)
			if err != nil {
				errs[i] = err
				return report.Failure(&outs[i], file, err)
			}
			if f.format == "yaml" {
				return report.YAML(&outs[i], name, res)
			}
			var opts []report.Option
			if f.velocities {
				opts = append(opts, report.WithVelocities())
			}
			opts = append(opts, report.WithMaxRows(f.maxRows))
			return report.Text(&outs[i], name, res, opts...)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i := range files {
		if _, err := cmd.OutOrStdout().Write(outs[i].Bytes()); err != nil {
			return err
		}
		if errs[i] != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(files))
	}
	return nil
}

// analyzeFile loads one file and runs the analyzer with the file's
// tolerances overridden by the command line.
func (c *cli) analyzeFile(file string, override mobility.Tolerances) (*mobility.Result, string, error) {
	l, err := mechfile.Load(file)
	if err != nil {
		return nil, file, err
	}
	log := c.logger.With(zap.String("mechanism", l.Name))

	opts := l.Tolerances.Merge(override).Options()
	opts = append(opts, mobility.WithLogger(log))
	res, err := mobility.Analyze(l.Mechanism, opts...)
	if err != nil {
		log.Debug("analysis failed", zap.Error(err))
		return nil, l.Name, err
	}
	return res, l.Name, nil
}
