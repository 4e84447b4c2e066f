package todoapi

import (
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Settings contains all configuration settings for the todo service. They
// are read from an optional YAML file and then overlaid with the process
// environment.
type Settings struct {
	Database            DBSettings   `yaml:"database" mapstructure:"-"`
	Tracer              TracerConfig `yaml:"tracer" mapstructure:"-"`
	Port                int          `yaml:"port" mapstructure:"PORT"`
	APIPrefix           string       `yaml:"api_prefix" mapstructure:"TODO_API_PREFIX"`
	LogLevel            string       `yaml:"log_level" mapstructure:"TODO_LOG_LEVEL"`
	ShutdownWaitSeconds int          `yaml:"shutdown_wait_secs"`
}

// NewSettings builds an in-memory representation of the given settings file.
func NewSettings(filename string) (*Settings, error) {
	configData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings file '%s'", filename)
	}
	settings := &Settings{}
	if err = yaml.Unmarshal(configData, settings); err != nil {
		return nil, errors.Wrapf(err, "parsing settings file '%s'", filename)
	}

	return settings, nil
}

// GetSettings reads the settings file at path, when one is given, applies
// the process environment on top and validates the result.
func GetSettings(path string) (*Settings, error) {
	settings := &Settings{}
	if path != "" {
		var err error
		settings, err = NewSettings(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err := settings.ApplyEnvironment(os.LookupEnv); err != nil {
		return nil, errors.Wrap(err, "applying environment to settings")
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating settings")
	}

	return settings, nil
}

var settingsEnvVars = []string{
	MongoURIEnvVar,
	DBNameEnvVar,
	PortEnvVar,
	APIPrefixEnvVar,
	CollectorEndpointEnvVar,
	LogLevelEnvVar,
}

// ApplyEnvironment overrides settings with any of the service's
// environment variables that lookup reports as set.
func (s *Settings) ApplyEnvironment(lookup func(string) (string, bool)) error {
	vars := map[string]interface{}{}
	for _, name := range settingsEnvVars {
		if val, ok := lookup(name); ok && val != "" {
			vars[name] = val
		}
	}
	if len(vars) == 0 {
		return nil
	}

	catcher := grip.NewBasicCatcher()
	catcher.Wrap(decodeEnvironment(vars, s), "decoding service settings")
	catcher.Wrap(decodeEnvironment(vars, &s.Database), "decoding database settings")
	catcher.Wrap(decodeEnvironment(vars, &s.Tracer), "decoding tracer settings")
	if _, ok := vars[CollectorEndpointEnvVar]; ok {
		s.Tracer.Enabled = true
	}

	return catcher.Resolve()
}

func decodeEnvironment(vars map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "creating decoder")
	}

	return errors.WithStack(decoder.Decode(vars))
}

// Validate checks the settings and fills in defaults for any optional
// values left unset.
func (s *Settings) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Wrap(s.Database.ValidateAndDefault(), "invalid database settings")
	catcher.Wrap(s.Tracer.ValidateAndDefault(), "invalid tracer settings")

	if s.Port == 0 {
		s.Port = DefaultPort
	}
	catcher.ErrorfWhen(s.Port < 0 || s.Port > 65535, "port %d is out of range", s.Port)

	if s.APIPrefix != "" {
		s.APIPrefix = "/" + strings.Trim(s.APIPrefix, "/")
		if s.APIPrefix == "/" {
			s.APIPrefix = ""
		}
	}

	catcher.ErrorfWhen(s.LogLevel != "" && level.FromString(s.LogLevel) == level.Invalid, "invalid log level '%s'", s.LogLevel)

	if s.ShutdownWaitSeconds == 0 {
		s.ShutdownWaitSeconds = DefaultShutdownWaitSeconds
	}
	catcher.NewWhen(s.ShutdownWaitSeconds < 0, "shutdown wait cannot be negative")

	return catcher.Resolve()
}

// ShutdownWait is the grace period given to in-flight requests on stop.
func (s *Settings) ShutdownWait() time.Duration {
	return time.Duration(s.ShutdownWaitSeconds) * time.Second
}
