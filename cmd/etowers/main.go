package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/appengine-ltd/electron-towers/cmd/etowers/commands"
	"github.com/appengine-ltd/electron-towers/internal/logger"
)

// version, commit, date are injected at build time with -ldflags -X.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := commands.NewRootCmd(commands.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
	})
	err := root.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}
