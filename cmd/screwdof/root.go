package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=…".
var version = "dev"

// cli carries the state shared by all subcommands.
type cli struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "screwdof",
		Short: "Screw-theory mobility (DOF) analyzer",
		Long: `screwdof computes the instantaneous mobility of spatial mechanisms built
from revolute and prismatic joints.

For every mechanism file it reports the finite degrees of freedom, the
instantaneous and gauge freedoms that were filtered out, the singular
spectrum of the loop constraints, the end-effector twist basis and a
qualitative motion type.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log analyzer stages at debug level")

	root.AddCommand(
		c.analyzeCmd(),
		c.spectrumCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "screwdof", version)
			},
		},
	)
	return root
}
