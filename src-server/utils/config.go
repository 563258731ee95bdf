package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rebelcal/src-server/normalize"
)

type Config struct {
	port string

	databasePath string
	journalPath  string
	sourcesFile  string

	location      *time.Location
	scrapeTimeout time.Duration
	userAgent     string

	metricCollectionInterval time.Duration
	logLevel                 slog.Level
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		databasePath: func() string {
			databasePath := os.Getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./sqlite.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return filepath.Clean(databasePath)
		}(),
		journalPath: func() string {
			journalPath := os.Getenv("JOURNAL_PATH")
			if journalPath == "" {
				journalPath = "./journal.db"
			}
			slog.Debug("env", "JOURNAL_PATH", journalPath)
			return filepath.Clean(journalPath)
		}(),
		sourcesFile: func() string {
			sourcesFile := os.Getenv("SOURCES_FILE")
			if sourcesFile == "" {
				slog.Debug("SOURCES_FILE is not set, using built-in sources")
				return ""
			}
			slog.Debug("env", "SOURCES_FILE", sourcesFile)
			return filepath.Clean(sourcesFile)
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			switch timezoneStr {
			case "":
				slog.Debug("TIMEZONE is not set, using Pacific", "timezone", normalize.PacificZone)
				return normalize.Pacific
			case "UTC":
				slog.Warn("TIMEZONE is set to UTC, scheduled scrapes follow UTC")
				return time.UTC
			}
			loc, err := time.LoadLocation(timezoneStr)
			if err != nil {
				slog.Warn("invalid TIMEZONE, using Pacific", "timezone", timezoneStr, "error", err)
				return normalize.Pacific
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),
		scrapeTimeout: parseDurationEnv("SCRAPE_TIMEOUT", 60*time.Second),
		userAgent: func() string {
			userAgent := os.Getenv("USER_AGENT")
			if userAgent == "" {
				userAgent = "Mozilla/5.0 (compatible; rebelcal)"
			}
			slog.Debug("env", "USER_AGENT", userAgent)
			return userAgent
		}(),

		metricCollectionInterval: parseDurationEnv("METRIC_COLLECTION_INTERVAL", 15*time.Second),
		logLevel:                 ParseLogLevel(os.Getenv("LOG_LEVEL")),
	}
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		slog.Debug("env not set, using default", "key", key, "default", fallback)
		return fallback
	}
	duration, err := time.ParseDuration(raw)
	if err != nil || duration <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	slog.Debug("env", key, raw, "duration", duration)
	return duration
}

// ParseLogLevel defaults to debug.
func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DATABASE_PATH env, default to ./sqlite.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get JOURNAL_PATH env, default to ./journal.db
func (c *Config) GetJournalPath() string {
	return c.journalPath
}

// Get SOURCES_FILE env, empty when unset
func (c *Config) GetSourcesFile() string {
	return c.sourcesFile
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get SCRAPE_TIMEOUT env
func (c *Config) GetScrapeTimeout() time.Duration {
	return c.scrapeTimeout
}

// Get USER_AGENT env
func (c *Config) GetUserAgent() string {
	return c.userAgent
}

// Get METRIC_COLLECTION_INTERVAL env
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get LOG_LEVEL env
func (c *Config) GetLogLevel() slog.Level {
	return c.logLevel
}
