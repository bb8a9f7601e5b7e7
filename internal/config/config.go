// Package config loads the fill order, exception table and game defaults.
//
// Sources, lowest precedence first: built-in defaults, an etowers.toml found
// by walking up from the working directory (or the file passed explicitly),
// then ETOWERS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/appengine-ltd/electron-towers/internal/orbital"
)

const (
	envPrefix   = "ETOWERS"
	projectFile = "etowers.toml"
)

// Config is the decoded configuration.
type Config struct {
	Table TableConfig `mapstructure:"table"`
	Game  GameConfig  `mapstructure:"game"`
	Log   LogConfig   `mapstructure:"log"`
}

type TableConfig struct {
	FillOrder  []string        `mapstructure:"fill_order"`
	Exceptions []ExceptionData `mapstructure:"exceptions"`
}

// ExceptionData is one exception table row as written in a config file.
type ExceptionData struct {
	Z       int    `mapstructure:"z"`
	S       string `mapstructure:"s"`
	D       string `mapstructure:"d"`
	SFinal  int    `mapstructure:"s_final"`
	DTarget int    `mapstructure:"d_target"`
}

type GameConfig struct {
	Exceptions bool `mapstructure:"exceptions"`
	Sandbox    bool `mapstructure:"sandbox"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("table.fill_order", orbital.DefaultFillOrder)
	v.SetDefault("table.exceptions", defaultExceptionData())

	v.SetDefault("game.exceptions", false)
	v.SetDefault("game.sandbox", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

// Load reads configuration. An empty path searches for etowers.toml; a
// missing project file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path == "" {
		path = findProjectConfig()
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "config file %s", path), "pass an existing .toml or .yaml file to --config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper decodes an already prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	// Env vars arrive as one space separated string.
	if raw := v.GetString("table.fill_order"); len(cfg.Table.FillOrder) <= 1 && strings.Contains(raw, " ") {
		cfg.Table.FillOrder = strings.Fields(raw)
	}
	return &cfg, nil
}

// BuildTable validates the table section and returns the orbital table.
func (c *Config) BuildTable() (*orbital.Table, error) {
	rules := make(map[int]orbital.ExceptionRule, len(c.Table.Exceptions))
	for i, row := range c.Table.Exceptions {
		s, err := orbital.ParseSubshell(row.S)
		if err != nil {
			return nil, errors.Wrapf(err, "table.exceptions[%d].s", i)
		}
		d, err := orbital.ParseSubshell(row.D)
		if err != nil {
			return nil, errors.Wrapf(err, "table.exceptions[%d].d", i)
		}
		if _, dup := rules[row.Z]; dup {
			return nil, errors.Newf("table.exceptions lists Z=%d twice", row.Z)
		}
		rules[row.Z] = orbital.ExceptionRule{S: s, D: d, SFinal: row.SFinal, DTarget: row.DTarget}
	}
	tbl, err := orbital.NewTable(c.Table.FillOrder, rules)
	if err != nil {
		return nil, errors.Wrap(err, "invalid table configuration")
	}
	return tbl, nil
}

// defaultExceptionData is shaped like a decoded config file so viper merges
// it the same way.
func defaultExceptionData() []map[string]any {
	tbl := orbital.Default()
	out := make([]map[string]any, 0, len(tbl.Exceptions()))
	for _, z := range tbl.Exceptions() {
		r, _ := tbl.Exception(z)
		out = append(out, map[string]any{
			"z":        z,
			"s":        r.S.String(),
			"d":        r.D.String(),
			"s_final":  r.SFinal,
			"d_target": r.DTarget,
		})
	}
	return out
}

// findProjectConfig walks up from the working directory looking for
// etowers.toml and returns its path, or "".
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, projectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
