package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names read by LoadEnv.
const (
	EnvDBPath   = "FLIGHT_DB"
	EnvConfig   = "FLIGHT_CONFIG"
	EnvTheme    = "FLIGHT_THEME"
	EnvSSHAddr  = "FLIGHT_SSH_ADDR"
	EnvHTTPAddr = "FLIGHT_HTTP_ADDR"
)

// Env holds settings taken from the process environment.
// Empty fields mean the variable was not set.
type Env struct {
	DBPath     string
	ConfigPath string
	Theme      string
	SSHAddr    string
	HTTPAddr   string
}

// LoadEnv loads .env files (missing files are ignored) into the process
// environment and reads the FLIGHT_* variables. Variables already set in
// the environment win over .env values.
func LoadEnv(files ...string) Env {
	_ = godotenv.Load(files...)
	return Env{
		DBPath:     os.Getenv(EnvDBPath),
		ConfigPath: os.Getenv(EnvConfig),
		Theme:      os.Getenv(EnvTheme),
		SSHAddr:    os.Getenv(EnvSSHAddr),
		HTTPAddr:   os.Getenv(EnvHTTPAddr),
	}
}
