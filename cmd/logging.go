package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-shading-core/pkg/log"
)

var logger = log.New("shading")

// ConfigureLogging runs before every command and sets the level for all
// packages from the global -v/-vv flags. Without either flag only notices and
// above are printed, so rendered tables still reach the terminal.
func ConfigureLogging(ctx *cli.Context) error {
	log.SetLevel(verbosity(ctx.Bool("v"), ctx.Bool("vv")))
	return nil
}

func verbosity(verbose, veryVerbose bool) log.Level {
	switch {
	case veryVerbose:
		return log.Debug
	case verbose:
		return log.Info
	}
	return log.Notice
}
