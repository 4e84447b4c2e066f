package operations

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evergreen-ci/todoapi"
	"github.com/evergreen-ci/todoapi/rest/data"
	"github.com/evergreen-ci/todoapi/rest/route"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func startWebService() cli.Command {
	return cli.Command{
		Name:  "web",
		Usage: "start the todo REST API",
		Flags: servicePortFlag(serviceConfigFlags()...),
		Before: mergeBeforeFuncs(
			requireFileExistsWhenSet(confFlagName),
			requireEnvVar(todoapi.MongoURIEnvVar),
		),
		Action: func(c *cli.Context) error {
			settings, err := todoapi.GetSettings(c.String(confFlagName))
			if err != nil {
				return errors.Wrap(err, "loading settings")
			}
			if port := c.Int(portFlagName); port != 0 {
				settings.Port = port
			}
			if settings.LogLevel != "" {
				grip.Warning(errors.Wrap(setLogLevel(settings.LogLevel), "setting log level"))
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			env, err := todoapi.NewEnvironment(ctx, settings)
			grip.EmergencyFatal(errors.Wrap(err, "configuring application environment"))

			defer func() {
				closeCtx, closeCancel := context.WithTimeout(context.Background(), settings.ShutdownWait())
				defer closeCancel()
				grip.Error(errors.Wrap(env.Close(closeCtx), "closing environment"))
			}()

			sc, err := data.NewDBConnector(env)
			if err != nil {
				return errors.Wrap(err, "creating store connector")
			}
			handler, err := route.GetHandler(settings.APIPrefix, sc)
			if err != nil {
				return errors.Wrap(err, "creating REST handler")
			}

			server := getServer(fmt.Sprintf(":%d", settings.Port), handler)

			serviceWait := make(chan error, 1)
			go func() {
				defer recovery.LogStackTraceAndContinue("todo web service")
				serviceWait <- errors.WithStack(listenAndServe(server))
			}()
			go listenForShutdown(ctx, cancel)

			select {
			case err = <-serviceWait:
				return errors.Wrap(err, "running web service")
			case <-ctx.Done():
			}

			grip.Notice(message.Fields{
				"message": "shutting down web service",
				"wait":    settings.ShutdownWait().String(),
			})
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), settings.ShutdownWait())
			defer shutdownCancel()

			catcher := grip.NewBasicCatcher()
			catcher.Wrap(server.Shutdown(shutdownCtx), "shutting down web service")
			catcher.Add(<-serviceWait)

			return catcher.Resolve()
		},
	}
}

func getServer(addr string, n http.Handler) *http.Server {
	grip.Notice(message.Fields{
		"action":  "starting service",
		"service": addr,
		"build":   todoapi.BuildRevision,
		"process": grip.Name(),
	})

	return &http.Server{
		Addr:              addr,
		Handler:           n,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      time.Minute,
	}
}

func listenAndServe(server *http.Server) error {
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func listenForShutdown(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		grip.Infof("received %s, terminating web service", sig)
		cancel()
	case <-ctx.Done():
	}
}

func setLogLevel(l string) error {
	sender := grip.GetSender()
	info := sender.Level()
	info.Threshold = level.FromString(l)

	return sender.SetLevel(info)
}
