package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// View names accepted by TASKVIEW_VIEW and --view.
const (
	ViewProcesses  = "processes"
	ViewServices   = "services"
	ViewContainers = "containers"
)

// Config holds the runtime settings of taskview.
type Config struct {
	RefreshSeconds int
	AutoRefresh    bool
	View           string
	LogFile        string
	LogLevel       string
	Docker         bool

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	loaded := godotenv.Load() == nil

	return &Config{
		RefreshSeconds: getEnvInt("TASKVIEW_REFRESH_SECONDS", 1),
		AutoRefresh:    getEnvBool("TASKVIEW_AUTO_REFRESH", false),
		View:           getEnv("TASKVIEW_VIEW", ViewProcesses),
		LogFile:        getEnv("TASKVIEW_LOG_FILE", defaultLogFile()),
		LogLevel:       getEnv("TASKVIEW_LOG_LEVEL", "info"),
		Docker:         getEnvBool("TASKVIEW_DOCKER", true),
		EnvFileLoaded:  loaded,
	}
}

// Normalize clamps values the UI cannot use.
func (c *Config) Normalize() {
	if c.RefreshSeconds < 1 {
		c.RefreshSeconds = 1
	}
	switch strings.ToLower(c.View) {
	case ViewServices, ViewContainers:
		c.View = strings.ToLower(c.View)
	default:
		c.View = ViewProcesses
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "taskview.log"
	}
	return filepath.Join(dir, "taskview", "taskview.log")
}

// getEnv ambil env dengan fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}
