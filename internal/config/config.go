package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	BaseURL        string
	DataDir        string
	LogFile        string
	ResendCooldown time.Duration
	Debug          bool
}

func Load() Config {
	dataDir := getenv("AFYA_DATA_DIR", defaultDataDir())
	return Config{
		BaseURL:        getenv("AFYA_API_BASE_URL", "http://localhost:8000/api"),
		DataDir:        dataDir,
		LogFile:        getenv("AFYA_LOG_FILE", filepath.Join(dataDir, "afyaterm.log")),
		ResendCooldown: getenvDuration("AFYA_RESEND_COOLDOWN", 30*time.Second),
		Debug:          getenvBool("AFYA_DEBUG", false),
	}
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "afyaterm"
	}
	return filepath.Join(base, "afyaterm")
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE":
		return true
	case "0", "false", "FALSE":
		return false
	}
	return fallback
}
