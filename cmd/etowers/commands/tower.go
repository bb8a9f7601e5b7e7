package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/appengine-ltd/electron-towers/internal/element"
	"github.com/appengine-ltd/electron-towers/internal/logger"
	"github.com/appengine-ltd/electron-towers/internal/tower"
	"github.com/appengine-ltd/electron-towers/internal/ui"
)

var errMismatch = errors.New("configuration does not match the target")

// buildTower computes the target for the species argument and loads the
// --placed notation into a tower aimed at it.
func (a *app) buildTower(cmd *cobra.Command, raw string) (element.Species, *tower.Tower, error) {
	sp, err := a.species(cmd, raw)
	if err != nil {
		return element.Species{}, nil, err
	}
	res := a.target(cmd, sp)

	sandbox := a.cfg.Game.Sandbox
	if cmd.Flags().Changed("sandbox") {
		sandbox, _ = cmd.Flags().GetBool("sandbox")
	}
	tw := tower.New(a.table, res.Counts, sandbox)

	placedRaw, _ := cmd.Flags().GetString("placed")
	placed, err := a.table.ParseNotation(placedRaw)
	if err != nil {
		return element.Species{}, nil, errors.WithHint(errors.Wrap(err, "--placed"), `write subshells with counts, e.g. "1s2 2s2 2p3"`)
	}
	if err := tw.Load(placed); err != nil {
		return element.Species{}, nil, err
	}
	logger.Named("tower").Debugw("tower loaded", "species", sp.String(), "placed", a.table.Notation(placed), "sandbox", sandbox)
	return sp, tw, nil
}

func newHintCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hint <species>",
		Short: "Suggest the next electron to place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, tw, err := a.buildTower(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprint(out, ui.Boxes(a.table, tw)); err != nil {
				return err
			}
			p, ok := tw.Ghost()
			if !ok && !tw.Complete() {
				return errors.WithHint(errors.New("no legal next placement"), describeBlock(tw))
			}
			_, err = fmt.Fprint(out, ui.Hint(sp, p, ok))
			return err
		},
	}
	addTargetFlags(cmd)
	addTowerFlags(cmd)
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <species>",
		Short: "Grade a configuration against the target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, tw, err := a.buildTower(cmd, args[0])
			if err != nil {
				return err
			}
			mismatches := tw.Mismatches()
			if _, err := fmt.Fprint(cmd.OutOrStdout(), ui.Check(sp, mismatches)); err != nil {
				return err
			}
			if len(mismatches) > 0 {
				return errors.Wrapf(errMismatch, "%s", sp)
			}
			return nil
		},
	}
	addTargetFlags(cmd)
	addTowerFlags(cmd)
	_ = cmd.MarkFlagRequired("placed")
	return cmd
}

func addTowerFlags(cmd *cobra.Command) {
	cmd.Flags().String("placed", "", `electrons already placed, e.g. "1s2 2s2 2p3"`)
	cmd.Flags().Bool("sandbox", false, "skip Aufbau and ionization checks (default from config)")
}

// describeBlock explains why the planned next placement is refused.
func describeBlock(tw *tower.Tower) string {
	if _, v, found := tw.Plan(); found && !v.OK {
		return fmt.Sprintf("%s rule: %s", v.Rule, v.Msg)
	}
	return "remove electrons placed beyond the target"
}
