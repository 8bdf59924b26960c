package ratebot

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/raykavin/ratebot/pkg/logger"
	lrs "github.com/raykavin/ratebot/pkg/logger/logrus"
	"github.com/raykavin/ratebot/pkg/logger/zerolog"
)

// DefaultLog is the logger used when no WithLogger option is given.
// It is built from the process environment at init, so callers that load
// a .env file later should rebuild it with NewLogger.
var DefaultLog logger.Logger

const (
	// Default configuration values
	defaultLogLevel      = "info"
	defaultLogTimeFormat = "2006-01-02 15:04:05"
	defaultLogColored    = "true"
	defaultLogJSON       = "false"
	defaultLogBackend    = "zerolog"
)

// Environment variable names
const (
	envLogLevel      = "RATEBOT_LOG_LEVEL"
	envLogTimeFormat = "RATEBOT_LOG_TIME_FORMAT"
	envLogColor      = "RATEBOT_LOG_COLOR"
	envLogJSON       = "RATEBOT_LOG_JSON"
	envLogBackend    = "RATEBOT_LOG_BACKEND"
)

func init() {
	log, err := NewLogger(os.Stderr)
	if err != nil {
		panic(err)
	}

	DefaultLog = log
}

// NewLogger builds a logger writing to out from the RATEBOT_LOG_* environment variables
func NewLogger(out io.Writer) (logger.Logger, error) {
	level := getEnvWithDefault(envLogLevel, defaultLogLevel)

	jsonFormat, err := parseBoolEnv(envLogJSON, defaultLogJSON)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(getEnvWithDefault(envLogBackend, defaultLogBackend)) {
	case "logrus":
		log, err := lrs.New(level, jsonFormat)
		if err != nil {
			return nil, err
		}
		log.SetOutput(out)
		return lrs.NewAdapter(log), nil
	default:
		colored, err := parseBoolEnv(envLogColor, defaultLogColored)
		if err != nil {
			return nil, err
		}

		log, err := zerolog.New(zerolog.Options{
			Level:          level,
			DateTimeLayout: getEnvWithDefault(envLogTimeFormat, defaultLogTimeFormat),
			Colored:        colored,
			JSON:           jsonFormat,
			Output:         out,
		})
		if err != nil {
			return nil, err
		}
		return zerolog.NewAdapter(log), nil
	}
}

// getEnvWithDefault returns the value of the environment variable or the default if not set
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseBoolEnv gets a boolean environment variable with a default value
func parseBoolEnv(key, defaultValue string) (bool, error) {
	value := getEnvWithDefault(key, defaultValue)
	return strconv.ParseBool(value)
}
