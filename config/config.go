// Package config holds the environment-derived settings for a single run.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is an immutable snapshot of the HTTPSTAT_* environment variables,
// populated once at startup.
type Config struct {
	ShowBody      bool
	ShowIP        bool
	ShowSpeed     bool
	SaveBody      bool
	ShowResources bool
	Graph         bool
	MetricsOnly   bool
	Debug         bool
	CurlBin       string
	TimeoutSecs   uint
}

// FromEnv reads the environment. Unset, empty and unrecognized values fall
// back to the documented defaults; loading never fails.
func FromEnv() Config {
	return Config{
		ShowBody:      getenvBool("HTTPSTAT_SHOW_BODY", false),
		ShowIP:        getenvBool("HTTPSTAT_SHOW_IP", true),
		ShowSpeed:     getenvBool("HTTPSTAT_SHOW_SPEED", false),
		SaveBody:      getenvBool("HTTPSTAT_SAVE_BODY", true),
		ShowResources: getenvBool("HTTPSTAT_SHOW_RESOURCES", false),
		Graph:         getenvBool("HTTPSTAT_GRAPH", false),
		MetricsOnly:   getenvBool("HTTPSTAT_METRICS_ONLY", false),
		Debug:         getenvBool("HTTPSTAT_DEBUG", false),
		CurlBin:       getenvString("HTTPSTAT_CURL_BIN", "curl"),
		TimeoutSecs:   getenvUint("HTTPSTAT_TIMEOUT", 10),
	}
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func getenvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvUint(key string, def uint) uint {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 32)
	if err != nil {
		return def
	}
	return uint(v)
}
