package operations

import (
	"strings"

	"github.com/urfave/cli"
)

const (
	confFlagName = "conf"
	portFlagName = "port"
)

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func serviceConfigFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(confFlagName, "config", "c"),
		Usage: "path to an optional service configuration file; the environment overrides it",
	})
}

func servicePortFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.IntFlag{
		Name:  joinFlagNames(portFlagName, "p"),
		Usage: "port to listen on; overrides the configuration and the PORT environment variable",
	})
}
