package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/electron-towers/internal/element"
	"github.com/appengine-ltd/electron-towers/internal/ui"
)

func newElementsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "elements [query]",
		Short: "List elements or resolve a symbol, name or typo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := element.Catalog()
			if len(args) == 1 {
				e, err := element.Lookup(args[0])
				if err != nil {
					return err
				}
				items = []element.Element{e}
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), ui.Elements(items))
			return err
		},
	}
}
