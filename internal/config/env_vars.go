package config

import (
	"fmt"
	"strings"
)

type EnvVars struct {
	Port     string `env:"PORT, default=3000"`
	AppName  string `env:"APP_NAME, default=Owner Panel"`
	Env      string `env:"ENV, default=DEV"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "3000"
	}
	if !strings.HasPrefix(port, ":") && !strings.Contains(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// IsDev reports whether route logging and pretty console output are enabled
func (e EnvVars) IsDev() bool {
	return e.GetEnv() == "DEV"
}
