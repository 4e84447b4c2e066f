package todoapi

import (
	"context"
	"sync"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Environment provides the process-level services of the todo service:
// its settings, the one database client shared by every request, and
// telemetry. It is constructed once at startup and passed to the
// components that need it.
type Environment interface {
	// Settings returns the settings the environment was built with. The
	// settings object is not safe for concurrent mutation.
	Settings() *Settings

	Client() *mongo.Client
	DB() *mongo.Database

	// Context returns a context derived from the environment's
	// lifetime.
	Context() (context.Context, context.CancelFunc)

	Tracer() trace.Tracer
	Meter() metric.Meter

	// RegisterCloser adds a function object to an internal
	// tracker to be called by the Close method before process
	// termination. The ID is used in reporting, but must be
	// unique or a new closer could overwrite an existing closer.
	RegisterCloser(string, func(context.Context) error)
	// Close calls all registered closers in the environment.
	Close(context.Context) error
}

// NewEnvironment constructs an Environment, establishing a connection to
// the database and verifying it with a ping. A returned error means the
// database could not be reached and the process should not start.
func NewEnvironment(ctx context.Context, settings *Settings) (Environment, error) {
	if settings == nil {
		return nil, errors.New("settings must not be nil")
	}

	e := &envState{
		ctx:      ctx,
		settings: settings,
		closers:  map[string]func(context.Context) error{},
	}

	if err := e.initDB(ctx); err != nil {
		return nil, errors.Wrap(err, "configuring database")
	}

	if err := e.initTelemetry(ctx); err != nil {
		catcher := grip.NewBasicCatcher()
		catcher.Add(err)
		catcher.Wrap(e.Close(ctx), "closing partially initialized environment")
		return nil, errors.Wrap(catcher.Resolve(), "configuring telemetry")
	}

	return e, nil
}

type envState struct {
	ctx      context.Context
	settings *Settings
	client   *mongo.Client
	tracer   trace.Tracer
	meter    metric.Meter
	mu       sync.RWMutex
	closers  map[string]func(context.Context) error
}

func (e *envState) initDB(ctx context.Context) error {
	settings := e.settings.Database
	opts := options.Client().
		ApplyURI(settings.Url).
		SetConnectTimeout(settings.connectTimeout()).
		SetServerSelectionTimeout(settings.connectTimeout())

	var err error
	e.client, err = mongo.Connect(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "constructing database client")
	}

	pingCtx, cancel := context.WithTimeout(ctx, settings.connectTimeout())
	defer cancel()
	if err = e.client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		grip.Warning(message.WrapError(e.client.Disconnect(ctx), message.Fields{
			"message": "problem disconnecting unreachable database client",
		}))
		return errors.Wrap(err, "pinging database")
	}

	grip.Info(message.Fields{
		"message":  "connected to database",
		"database": settings.DB,
	})

	e.RegisterCloser("database", func(ctx context.Context) error {
		return errors.Wrap(e.client.Disconnect(ctx), "disconnecting database client")
	})

	return nil
}

func (e *envState) Settings() *Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.settings
}

func (e *envState) Client() *mongo.Client {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client
}

func (e *envState) DB() *mongo.Database {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client.Database(e.settings.Database.DB)
}

func (e *envState) Context() (context.Context, context.CancelFunc) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return context.WithCancel(e.ctx)
}

func (e *envState) Tracer() trace.Tracer {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.tracer
}

func (e *envState) Meter() metric.Meter {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.meter
}

func (e *envState) RegisterCloser(name string, closer func(context.Context) error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.closers[name]; ok {
		grip.Critical(message.Fields{
			"closer":  name,
			"message": "duplicate closer registered",
			"cause":   "programmer error",
		})
	}
	e.closers[name] = closer
}

func (e *envState) Close(ctx context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	deadline, _ := ctx.Deadline()
	catcher := grip.NewBasicCatcher()
	wg := &sync.WaitGroup{}
	for n, closer := range e.closers {
		if closer == nil {
			continue
		}

		wg.Add(1)
		go func(name string, close func(context.Context) error) {
			defer wg.Done()
			grip.Info(message.Fields{
				"message":      "calling closer",
				"closer":       name,
				"timeout_secs": time.Until(deadline),
				"deadline":     deadline,
			})
			catcher.Add(close(ctx))
		}(n, closer)
	}

	wg.Wait()
	return catcher.Resolve()
}
