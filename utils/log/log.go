package log

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/driftline/driftline/utils/dotenv"
	"github.com/driftline/driftline/utils/flag"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point
// is not a main function. Unit tests will fail with nil pointer
// dereference if we don't init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Structured JSON in prod for downstream log aggregation, plain
	// text everywhere else for readability.
	if os.Getenv("DRIFTLINE_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": flag.ServiceName, "is_development": os.Getenv("DRIFTLINE_ENV") != dotenv.ProdEnv},
	)
}
