package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"struct-mapper/internal/analyze"
	"struct-mapper/internal/match"
	"struct-mapper/options"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		targetPkg   string
		exclude     []string
		conversions []string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "plan <package> <Source> <Target>",
		Short: "Predict what a transfer between two struct types copies",
		Long: `Predicts, field by field, what mapping a Source value into a Target does:

  excluded      named by --exclude
  no_target     the target has no field with that name
  read_only     the target field may not be written
  unreachable   the target field sits behind an unexported embedded pointer
  copy          identical types
  assign        assignable types
  convert       an enabled conversion applies (category shown)
  dynamic       the source is an interface, decided by its value
  incompatible  reported as a diagnostic at runtime

Conversions come from the config file unless --conversions is given.`,
		Example: `  struct-mapper plan ./store Customer Customer --target-package ./warehouse
  struct-mapper plan ./store Order Order --target-package ./warehouse --conversions default,enum_string -f yaml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			if !cmd.Flags().Changed("conversions") {
				conversions = a.cfg.Conversions
			}

			allowed, err := options.ParseCategories(conversions)
			if err != nil {
				return err
			}

			if targetPkg == "" {
				targetPkg = args[0]
			}

			analyzer := analyze.NewAnalyzer(analyze.WithTagKey(a.cfg.Tag))

			found, err := analyzer.FindStructs(
				analyze.StructRef{Pattern: args[0], Name: args[1]},
				analyze.StructRef{Pattern: targetPkg, Name: args[2]},
			)
			if err != nil {
				a.fail(err)
				return err
			}

			source, target := found[0], found[1]

			plan := match.BuildPlan(source, target, allowed, exclude...)

			a.logger.Debug("Plan built",
				zap.String("source", source.ID.String()),
				zap.String("target", target.ID.String()),
				zap.Stringer("conversions", allowed),
				zap.Int("fields", len(plan.Fields)))

			return writePlan(cmd.OutOrStdout(), plan, format)
		},
	}

	cmd.Flags().StringVarP(&targetPkg, "target-package", "t", "", "package of the target type (defaults to the source package)")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "source field names to skip")
	cmd.Flags().StringSliceVarP(&conversions, "conversions", "c", nil, "conversion categories, e.g. default,text_number")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or yaml")

	return cmd
}

func writePlan(w io.Writer, plan *match.Plan, format string) error {
	if format == formatYAML {
		data, err := yaml.Marshal(plan)
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}

		_, err = w.Write(data)

		return err
	}

	fmt.Fprintf(w, "%s -> %s (%s)\n", plan.Source, plan.Target, plan.Conversions)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tSOURCE TYPE\tTARGET TYPE\tACTION")

	for _, f := range plan.Fields {
		action := string(f.Action)
		if f.Category != "" {
			action += " (" + f.Category + ")"
		}

		targetType := f.TargetType
		if targetType == "" {
			targetType = "-"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Field, f.SourceType, targetType, action)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d of %d fields copied, %d incompatible\n",
		plan.Copied(), len(plan.Fields), plan.Count(match.ActionIncompatible))

	return err
}
