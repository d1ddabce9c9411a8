package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/operator-framework/mpsolver/pkg/engine/simplex"
	"github.com/operator-framework/mpsolver/pkg/metrics"
	"github.com/operator-framework/mpsolver/pkg/mp/mpfile"
	"github.com/operator-framework/mpsolver/pkg/parameters"
	"github.com/operator-framework/mpsolver/pkg/solver"
)

type solveOptions struct {
	configPath      string
	maxWallTime     string
	engine          string
	trace           bool
	metricsTextfile string
}

func newSolveCmd() *cobra.Command {
	o := solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve MODEL",
		Short: "Solve the program described by a YAML or JSON model file",
		Long: `Solve the program described by a YAML or JSON model file.

The decoded status is printed, followed by the objective value and the
value of every variable when the program was solved to optimality.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.configuration(cmd)
			if err != nil {
				return err
			}
			return o.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg)
		},
	}

	o.addFlags(cmd.Flags())

	return cmd
}

func (o *solveOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "path to a solver configuration file")
	fs.StringVar(&o.maxWallTime, "max-wall-time", "", "wall time limit, such as 30s, or \"unbounded\"; overrides the configuration file")
	fs.StringVar(&o.engine, "engine", solver.DefaultEngine, "name of the engine to solve with")
	fs.BoolVar(&o.trace, "trace", false, "write the branch-and-bound search to stderr (simplex engine only)")
	fs.StringVar(&o.metricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file after solving")
}

func (o *solveOptions) configuration(cmd *cobra.Command) (parameters.Configuration, error) {
	cfg := parameters.Default()
	if o.configPath != "" {
		loaded, err := parameters.Load(o.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("max-wall-time") {
		limit, err := parameters.ParseLimit(o.maxWallTime)
		if err != nil {
			return cfg, fmt.Errorf("invalid --max-wall-time: %w", err)
		}
		cfg.MaxWallTime = limit
	}
	return cfg, nil
}

func (o *solveOptions) run(out, errOut io.Writer, modelPath string, cfg parameters.Configuration) error {
	logger := log.StandardLogger()

	options := []solver.Option{solver.WithLogger(logger), solver.WithConfiguration(cfg)}
	switch {
	case o.trace && o.engine != simplex.Name:
		return fmt.Errorf("--trace is not supported by engine %q", o.engine)
	case o.trace:
		options = append(options, solver.WithFactory(simplex.NewFactory(simplex.WithTracer(simplex.LoggingTracer{Writer: errOut}))))
	default:
		options = append(options, solver.WithEngine(o.engine))
	}
	base, err := solver.New(options...)
	if err != nil {
		return err
	}

	metrics.RegisterSolver()
	s := solver.NewInstrumentedSolver(base, metrics.EmitSolveSuccess, metrics.EmitSolveFailure).
		WithStatusEmitter(metrics.EmitSolveStatus)

	m, err := mpfile.Load(modelPath)
	if err != nil {
		return err
	}
	metrics.ObserveModel(len(m.Variables()), len(m.Constraints()))
	logger.WithFields(log.Fields{
		"model":         m.Name(),
		"configuration": s.Configuration().String(),
	}).Debug("solving")

	r, solveErr := s.Solve(m)
	if o.metricsTextfile != "" {
		if err := metrics.WriteTextfile(o.metricsTextfile); err != nil {
			logger.WithError(err).Warn("failed to write metrics")
		}
	}
	if solveErr != nil {
		return solveErr
	}

	fmt.Fprintf(out, "status: %s\nwall time: %s\n", r.Status, r.Time.WallTime)
	if sol, ok := r.Solution(); ok {
		if _, err := sol.WriteTo(out); err != nil {
			return err
		}
	}
	return nil
}
