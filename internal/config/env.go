// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssbarnea/lintrc/internal/log"
)

func envLogger() zerolog.Logger {
	return log.WithComponent("config")
}

func logDefault(logger zerolog.Logger, key string, empty bool) *zerolog.Event {
	msg := logger.Debug().Str("key", key).Str("source", "default")
	if empty {
		return msg.Bool("empty_env", true)
	}
	return msg
}

// ParseString reads a string from the environment or returns the
// default. The chosen source is logged at debug level; values of keys
// containing "password" or "token" are never logged.
func ParseString(key, defaultValue string) string {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok {
		logDefault(logger, key, false).Str("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	if v == "" {
		logDefault(logger, key, true).Str("default", defaultValue).Msg("using default value")
		return defaultValue
	}

	lower := strings.ToLower(key)
	if strings.Contains(lower, "password") || strings.Contains(lower, "token") {
		logger.Debug().Str("key", key).Str("source", "environment").Bool("sensitive", true).Msg("using environment variable")
	} else {
		logger.Debug().Str("key", key).Str("value", v).Str("source", "environment").Msg("using environment variable")
	}
	return v
}

// ParseBool reads a boolean from the environment or returns the
// default. It accepts true/false, 1/0 and yes/no, case-insensitive.
func ParseBool(key string, defaultValue bool) bool {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok {
		logDefault(logger, key, false).Bool("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	if v == "" {
		logDefault(logger, key, true).Bool("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		logger.Debug().Str("key", key).Bool("value", true).Str("source", "environment").Msg("using environment variable")
		return true
	case "false", "0", "no":
		logger.Debug().Str("key", key).Bool("value", false).Str("source", "environment").Msg("using environment variable")
		return false
	}
	logger.Warn().Str("key", key).Str("value", v).Bool("default", defaultValue).
		Msg("invalid boolean in environment variable, using default")
	return defaultValue
}

// ParseInt reads an integer from the environment or returns the
// default on absence, emptiness or parse failure.
func ParseInt(key string, defaultValue int) int {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok {
		logDefault(logger, key, false).Int("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	if v == "" {
		logDefault(logger, key, true).Int("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
		return defaultValue
	}
	logger.Debug().Str("key", key).Int("value", i).Str("source", "environment").Msg("using environment variable")
	return i
}

// ParseDuration reads a Go duration ("5s", "1m") from the environment
// or returns the default on absence, emptiness or parse failure.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok {
		logDefault(logger, key, false).Dur("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	if v == "" {
		logDefault(logger, key, true).Dur("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Dur("default", defaultValue).
			Msg("invalid duration in environment variable, using default")
		return defaultValue
	}
	logger.Debug().Str("key", key).Dur("value", d).Str("source", "environment").Msg("using environment variable")
	return d
}

// ParseFloat reads a float64 from the environment or returns the
// default on absence, emptiness or parse failure.
func ParseFloat(key string, defaultValue float64) float64 {
	logger := envLogger()
	v, ok := os.LookupEnv(key)
	if !ok {
		logDefault(logger, key, false).Float64("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	if v == "" {
		logDefault(logger, key, true).Float64("default", defaultValue).Msg("using default value")
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Float64("default", defaultValue).
			Msg("invalid float in environment variable, using default")
		return defaultValue
	}
	logger.Debug().Str("key", key).Float64("value", f).Str("source", "environment").Msg("using environment variable")
	return f
}
