package todoapi

import (
	"time"

	"github.com/pkg/errors"
)

// DBSettings locates the document store holding the todo collection.
type DBSettings struct {
	Url                   string `yaml:"url" mapstructure:"MONGODB_URI"`
	DB                    string `yaml:"db" mapstructure:"DB_NAME"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_secs"`
}

// ValidateAndDefault checks that a connection URI is present and fills in
// the database name and timeout.
func (s *DBSettings) ValidateAndDefault() error {
	if s.Url == "" {
		return errors.Errorf("database URL must be set (%s)", MongoURIEnvVar)
	}
	if s.DB == "" {
		s.DB = DefaultDatabaseName
	}
	if s.ConnectTimeoutSeconds < 0 {
		return errors.New("connect timeout cannot be negative")
	}
	if s.ConnectTimeoutSeconds == 0 {
		s.ConnectTimeoutSeconds = DefaultConnectTimeoutSeconds
	}

	return nil
}

func (s *DBSettings) connectTimeout() time.Duration {
	return time.Duration(s.ConnectTimeoutSeconds) * time.Second
}
