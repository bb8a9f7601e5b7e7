package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/electron-towers/internal/element"
	"github.com/appengine-ltd/electron-towers/internal/orbital"
	"github.com/appengine-ltd/electron-towers/internal/ui"
)

type targetOutput struct {
	Species     string                 `json:"species" yaml:"species"`
	Element     element.Element        `json:"element" yaml:"element"`
	Target      orbital.Target         `json:"target" yaml:"target"`
	Notation    string                 `json:"notation" yaml:"notation"`
	Electrons   int                    `json:"electrons" yaml:"electrons"`
	Subshells   []orbital.Occupancy    `json:"subshells" yaml:"subshells"`
	Requested   int                    `json:"requested,omitempty" yaml:"requested,omitempty"`
	Removed     int                    `json:"removed,omitempty" yaml:"removed,omitempty"`
	Exception   *orbital.ExceptionRule `json:"exception,omitempty" yaml:"exception,omitempty"`
	Diagnostics []string               `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func newTargetCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "target <species>",
		Short: "Show the target electron configuration for an element or ion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := a.species(cmd, args[0])
			if err != nil {
				return err
			}
			res := a.target(cmd, sp)

			out := cmd.OutOrStdout()
			switch output {
			case "text":
				_, err = fmt.Fprint(out, ui.Configuration(a.table, sp, res))
				return err
			case "json", "yaml":
				return writeStructured(out, output, buildTargetOutput(a.table, sp, res))
			default:
				return errors.WithHint(errors.Newf("unknown output format %q", output), "use text, json or yaml")
			}
		},
	}
	addTargetFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func buildTargetOutput(tbl *orbital.Table, sp element.Species, res orbital.Result) targetOutput {
	o := targetOutput{
		Species:   sp.String(),
		Element:   sp.Element,
		Target:    res.Target,
		Notation:  tbl.Notation(res.Counts),
		Electrons: res.Counts.Total(),
		Subshells: tbl.Occupancies(res.Counts),
		Requested: res.Requested,
		Removed:   res.Removed,
		Exception: res.Exception,
	}
	for _, d := range res.Diagnostics {
		o.Diagnostics = append(o.Diagnostics, d.Error())
	}
	return o
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		return enc.Close()
	default:
		return errors.Newf("unknown structured format %q", format)
	}
}
