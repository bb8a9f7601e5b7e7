package commands

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/electron-towers/internal/update"
)

// releaseChecker is swapped in tests.
var releaseChecker = update.NewChecker

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			check, _ := cmd.Flags().GetBool("check")
			out := cmd.OutOrStdout()
			if check {
				st, err := releaseChecker().Check(cmd.Context(), a.info.Version)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeStructured(out, "json", st)
				}
				_, err = fmt.Fprintln(out, st)
				return err
			}
			if jsonOutput {
				data, err := json.MarshalIndent(a.info, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			_, err := fmt.Fprintf(out, "Electron Towers %s (%s) %s\nGo: %s %s/%s\n",
				a.info.Version, a.info.Commit, a.info.BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
	cmd.Flags().BoolP("json", "j", false, "output version info as JSON")
	cmd.Flags().Bool("check", false, "check GitHub for a newer release")
	return cmd
}
