package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/appengine-ltd/electron-towers/internal/config"
	"github.com/appengine-ltd/electron-towers/internal/element"
	"github.com/appengine-ltd/electron-towers/internal/logger"
	"github.com/appengine-ltd/electron-towers/internal/orbital"
)

// BuildInfo is stamped into the binary by the release build.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	info    BuildInfo
	cfgPath string
	logJSON bool
	verbose bool

	cfg   *config.Config
	table *orbital.Table
}

// NewRootCmd builds the etowers command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	a := &app{info: info}

	root := &cobra.Command{
		Use:   "etowers",
		Short: "Electron Towers - electron configurations for atoms and ions",
		Long: `Electron Towers computes the target electron configuration for an element
or ion and checks configurations built by hand against it.

Examples:
  etowers target Fe2+              # 1s2 2s2 2p6 3s2 3p6 3d6
  etowers target Cu --exceptions   # apply the 4s1 3d10 anomaly
  etowers hint Na+ --placed "1s2 2s2"
  etowers check Cl- --placed "1s2 2s2 2p6 3s2 3p6"
  etowers elements sodum`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default: etowers.toml in this or a parent directory)")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "emit logs as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newTargetCmd(a),
		newElementsCmd(a),
		newHintCmd(a),
		newCheckCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if err := logger.Initialize(a.logJSON || cfg.Log.JSON, a.verbose || cfg.Log.Verbose); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	log := logger.Named("config")

	tbl, err := cfg.BuildTable()
	if err != nil {
		log.Errorw("table rejected", "error", err)
		return err
	}
	log.Debugw("table ready",
		"subshells", len(tbl.Order()),
		"capacity", tbl.Capacity(),
		"exceptions", len(tbl.Exceptions()),
	)
	a.cfg = cfg
	a.table = tbl
	return nil
}

// species parses the positional argument and applies an --ion override.
func (a *app) species(cmd *cobra.Command, raw string) (element.Species, error) {
	sp, err := element.ParseSpecies(raw)
	if err != nil {
		return element.Species{}, err
	}
	if cmd.Flags().Changed("ion") {
		ion, _ := cmd.Flags().GetInt("ion")
		sp.Charge = ion
	}
	return sp, nil
}

// target computes the configuration for sp, honouring --exceptions over the
// configured default.
func (a *app) target(cmd *cobra.Command, sp element.Species) orbital.Result {
	useExceptions := a.cfg.Game.Exceptions
	if cmd.Flags().Changed("exceptions") {
		useExceptions, _ = cmd.Flags().GetBool("exceptions")
	}
	res := a.table.ComputeTarget(orbital.Target{Z: sp.Element.Z, Ion: sp.Charge, Exceptions: useExceptions})

	log := logger.Named("target")
	for _, d := range res.Diagnostics {
		log.Warnw("target diagnostic", "species", sp.String(), "error", d.Error())
	}
	log.Debugw("target computed", "species", sp.String(), "electrons", res.Counts.Total(), "exceptions", useExceptions)
	return res
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().Int("ion", 0, "ion charge, overrides the charge written in the species")
	cmd.Flags().Bool("exceptions", false, "apply ground-state exceptions to neutral atoms (default from config)")
}
