// Package main provides the CLI entrypoint for struct-mapper.
//
// struct-mapper inspects struct types statically, the same way the mapper inspects
// them at runtime:
//   - describe lists the field descriptors of a struct type
//   - plan predicts what a transfer between two struct types copies and skips
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"struct-mapper/errinfo"
	"struct-mapper/mapper"
)

// app holds the state shared by all commands.
type app struct {
	configPath string
	verbose    bool

	cfg    *mapper.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "struct-mapper",
		Short: "Inspect how struct-mapper matches fields between struct types",
		Long: `struct-mapper copies same-named fields between loosely related struct types.

This tool runs the same field matching statically over Go packages, to review
a mapping before it runs.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML mapper config")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newDescribeCmd(a), newPlanCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := mapper.DefaultConfig()
	if a.configPath != "" {
		var err error
		if cfg, err = mapper.LoadConfig(a.configPath); err != nil {
			return err
		}
	}

	if a.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := cfg.BuildLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger

	a.logger.Debug("Config loaded",
		zap.String("path", a.configPath),
		zap.String("tag", cfg.Tag),
		zap.Strings("conversions", cfg.Conversions))

	return nil
}

func (a *app) fail(err error) {
	a.logger.Error("Command failed", zap.Object("error", errinfo.New(err, errinfo.WithStackTrace(a.verbose))))
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
