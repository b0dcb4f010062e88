package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// AppDir is the name of the upnote state and configuration directory.
	AppDir = ".upnote"
	// EnvFileName is the name of the environment variables file.
	EnvFileName = ".env"
)

// LoadDotEnv loads environment variables from <baseDir>/.upnote/.env if it exists.
// It uses godotenv.Load() which respects existing environment variables
// (system env vars take priority over .env values).
// Returns nil if the file doesn't exist (not an error condition).
// Returns error only if the file exists but cannot be parsed.
func LoadDotEnv(baseDir string) error {
	envPath := filepath.Join(baseDir, AppDir, EnvFileName)

	// Check if file exists - silently skip if not
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}

	// Load the .env file - godotenv.Load() does NOT override existing vars
	return godotenv.Load(envPath)
}

// LoadDotEnvDefaults loads .env from the working directory first, then from the
// home directory. Earlier files win because godotenv never overrides.
func LoadDotEnvDefaults() error {
	if cwd, err := os.Getwd(); err == nil {
		if err := LoadDotEnv(cwd); err != nil {
			return err
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		return LoadDotEnv(home)
	}

	return nil
}
