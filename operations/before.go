package operations

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func requireFileExistsWhenSet(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		path := c.String(name)
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return errors.Wrapf(err, "checking %s file '%s'", name, path)
		}

		return nil
	}
}

func requireEnvVar(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if os.Getenv(name) == "" && c.String(confFlagName) == "" {
			return errors.Errorf("environment variable '%s' must be set when no configuration file is given", name)
		}

		return nil
	}
}

func mergeBeforeFuncs(ops ...cli.BeforeFunc) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}
