package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"struct-mapper/internal/analyze"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	if format != formatText && format != formatYAML {
		return fmt.Errorf("unknown output format %q, want %s or %s", format, formatText, formatYAML)
	}

	return nil
}

type fieldDescription struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Kind     string `yaml:"kind"`
	Readable bool   `yaml:"readable"`
	Writable bool   `yaml:"writable"`
	Index    []int  `yaml:"index,flow"`
}

type structDescription struct {
	Type   string             `yaml:"type"`
	Fields []fieldDescription `yaml:"fields"`
}

func newDescribeCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "describe <package> <Type>",
		Short: "List the field descriptors of a struct type",
		Long: `Lists the fields the mapper sees on a struct type: exported fields with
embedded structs flattened, and the access granted by the mapper tag.`,
		Example: "  struct-mapper describe ./store Customer",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			info, err := analyze.NewAnalyzer(analyze.WithTagKey(a.cfg.Tag)).FindStruct(args[0], args[1])
			if err != nil {
				a.fail(err)
				return err
			}

			a.logger.Debug("Struct described", zap.String("type", info.ID.String()), zap.Int("fields", len(info.Fields)))

			return writeDescription(cmd.OutOrStdout(), describe(info), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or yaml")

	return cmd
}

func describe(info *analyze.StructInfo) structDescription {
	res := structDescription{Type: info.ID.Short()}

	for _, f := range info.Fields {
		res.Fields = append(res.Fields, fieldDescription{
			Name:     f.Name,
			Type:     analyze.TypeString(f.Type),
			Kind:     analyze.KindOf(f.Type).String(),
			Readable: f.Readable,
			Writable: f.Writable,
			Index:    f.Index,
		})
	}

	return res
}

func accessString(readable, writable bool) string {
	access := []byte("--")
	if readable {
		access[0] = 'r'
	}

	if writable {
		access[1] = 'w'
	}

	return string(access)
}

func writeDescription(w io.Writer, d structDescription, format string) error {
	if format == formatYAML {
		data, err := yaml.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal description: %w", err)
		}

		_, err = w.Write(data)

		return err
	}

	fmt.Fprintln(w, d.Type)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tKIND\tACCESS\tINDEX")

	for _, f := range d.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n", f.Name, f.Type, f.Kind, accessString(f.Readable, f.Writable), f.Index)
	}

	return tw.Flush()
}
