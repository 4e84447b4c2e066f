package operations

import (
	"fmt"

	"github.com/evergreen-ci/todoapi"
	"github.com/urfave/cli"
)

func Version() cli.Command {
	return cli.Command{
		Name:  "version",
		Usage: "prints the revision of the current binary",
		Action: func(c *cli.Context) error {
			revision := todoapi.BuildRevision
			if revision == "" {
				revision = "unknown"
			}
			fmt.Printf("%s build revision: %s\n", todoapi.ServiceName, revision)
			return nil
		},
	}
}
