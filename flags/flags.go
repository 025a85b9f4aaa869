// Package flags holds the CLI application skeleton and the flag set shared
// by the fstr commands.
package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp creates the base cli application: name, version, and output
// destination. Commands and flags are attached by the launcher.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "fstr"
	app.Usage = "Inspect compact encodings and ordered-key bounds"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	return app
}

// LogFlags returns the logging flags shared across commands.
func LogFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=panic,1=fatal,2=error,3=warn,4=info,5=debug)",
			Value: 4,
		},
	}
}
