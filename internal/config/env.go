package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	DefaultDataDir   = ".chemsim"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Env holds process-level settings read from the environment.
type Env struct {
	DataDir   string
	LogLevel  string
	LogFormat string
}

// LoadEnv reads the given dotenv files (".env" when none are given) into
// the process environment without overriding variables that are already
// set, then returns the CHEMSIM_* settings. A missing file is not an error.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	return Env{
		DataDir:   getenv("CHEMSIM_DATA", DefaultDataDir),
		LogLevel:  getenv("CHEMSIM_LOG_LEVEL", DefaultLogLevel),
		LogFormat: getenv("CHEMSIM_LOG_FORMAT", DefaultLogFormat),
	}, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
