package todoapi

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type EnvironmentSuite struct {
	ctx    context.Context
	cancel context.CancelFunc
	env    Environment
	suite.Suite
}

func TestEnvironmentSuite(t *testing.T) {
	assert.Implements(t, (*Environment)(nil), &envState{})

	suite.Run(t, new(EnvironmentSuite))
}

func (s *EnvironmentSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	uri, configured := os.LookupEnv(MongoURIEnvVar)
	if !configured {
		uri = "mongodb://localhost:27017"
	}
	settings := &Settings{Database: DBSettings{Url: uri, DB: "todo_test", ConnectTimeoutSeconds: 2}}
	s.Require().NoError(settings.Validate())

	env, err := NewEnvironment(s.ctx, settings)
	if err != nil && !configured {
		s.T().Skipf("no database reachable at %s: %s", uri, err)
	}
	s.Require().NoError(err)
	s.env = env
}

func (s *EnvironmentSuite) TearDownTest() {
	if s.env != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.NoError(s.env.Close(closeCtx))
	}
	s.cancel()
}

func (s *EnvironmentSuite) TestDatabaseIsReachable() {
	s.Equal("todo_test", s.env.DB().Name())
	s.NoError(s.env.Client().Database("admin").RunCommand(s.ctx, bson.D{{Key: "ping", Value: 1}}).Err())
}

func (s *EnvironmentSuite) TestTelemetryDisabledByDefault() {
	s.NotNil(s.env.Tracer())
	s.NotNil(s.env.Meter())
	s.False(s.env.Settings().Tracer.Enabled)
}

func (s *EnvironmentSuite) TestContextFollowsEnvironment() {
	ctx, cancel := s.env.Context()
	defer cancel()

	s.NoError(ctx.Err())
	s.cancel()
	s.Error(ctx.Err())
}

func (s *EnvironmentSuite) TestCloseCallsEveryCloser() {
	var calls int64
	s.env.RegisterCloser("first", func(context.Context) error {
		atomic.AddInt64(&calls, 1)
		return nil
	})
	s.env.RegisterCloser("second", func(context.Context) error {
		atomic.AddInt64(&calls, 1)
		return errors.New("second failed")
	})

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.env.Close(closeCtx)
	s.Require().Error(err)
	s.Contains(err.Error(), "second failed")
	s.EqualValues(2, atomic.LoadInt64(&calls))

	// the database client is already disconnected
	s.env = nil
}

func TestNewEnvironmentFailsFast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := NewEnvironment(ctx, nil)
	assert.Error(t, err)

	settings := &Settings{Database: DBSettings{Url: "mongodb://127.0.0.1:1", ConnectTimeoutSeconds: 1}}
	require.NoError(t, settings.Validate())

	start := time.Now()
	_, err = NewEnvironment(ctx, settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
	assert.Less(t, time.Since(start), 10*time.Second)
}
