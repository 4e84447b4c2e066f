package todoapi

const (
	// PackageName is the import path of the service, used to name
	// tracers and meters.
	PackageName = "github.com/evergreen-ci/todoapi"

	// ServiceName identifies the process in logs and telemetry.
	ServiceName = "todoapi"

	DefaultDatabaseName = "todo_db"
	DefaultPort         = 3000

	// DefaultShutdownWaitSeconds bounds how long the web service waits
	// for in-flight requests when it is asked to stop.
	DefaultShutdownWaitSeconds = 10

	// DefaultConnectTimeoutSeconds bounds the startup ping against the
	// database.
	DefaultConnectTimeoutSeconds = 10

	// environment variables read at startup.
	MongoURIEnvVar          = "MONGODB_URI"
	DBNameEnvVar            = "DB_NAME"
	PortEnvVar              = "PORT"
	APIPrefixEnvVar         = "TODO_API_PREFIX"
	CollectorEndpointEnvVar = "OTEL_COLLECTOR_ENDPOINT"
	LogLevelEnvVar          = "TODO_LOG_LEVEL"
)

// BuildRevision is set at link time with -ldflags.
var BuildRevision = ""
