package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/evergreen-ci/todoapi"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/stretchr/testify/require"
)

const (
	// TestDatabase is the database every store-backed test writes to.
	TestDatabase = "todo_test"

	defaultTestURI = "mongodb://localhost:27017"
)

// TestConfig creates settings pointing at the test database. The
// connection URI comes from MONGODB_URI when it is set.
func TestConfig() *todoapi.Settings {
	uri := os.Getenv(todoapi.MongoURIEnvVar)
	if uri == "" {
		uri = defaultTestURI
	}

	settings := &todoapi.Settings{
		Database: todoapi.DBSettings{
			Url:                   uri,
			DB:                    TestDatabase,
			ConnectTimeoutSeconds: 2,
		},
	}
	grip.EmergencyPanic(message.WrapError(settings.Validate(), message.Fields{
		"message": "invalid test settings",
	}))

	return settings
}

// NewEnvironment connects to the test database. When no MONGODB_URI is
// configured and nothing answers on the default address, the test is
// skipped; an explicitly configured database that cannot be reached fails
// the test.
func NewEnvironment(ctx context.Context, t *testing.T) todoapi.Environment {
	env, err := todoapi.NewEnvironment(ctx, TestConfig())
	if err != nil && os.Getenv(todoapi.MongoURIEnvVar) == "" {
		t.Skipf("no database reachable at %s: %s", defaultTestURI, err)
	}
	require.NoError(t, err)

	t.Cleanup(func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grip.Warning(message.WrapError(env.Close(closeCtx), message.Fields{
			"message": "problem closing test environment",
			"test":    t.Name(),
		}))
	})

	return env
}
