package cmd

import (
	"os"
	"strconv"
)

// Environment variables read by the CLI
const (
	EnvBackend       = "PASSWORKS_BACKEND"
	EnvDatabase      = "PASSWORKS_DB"
	EnvRedisAddr     = "PASSWORKS_REDIS_ADDR"
	EnvRedisPassword = "PASSWORKS_REDIS_PASSWORD"
	EnvRedisDB       = "PASSWORKS_REDIS_DB"
	EnvLogLevel      = "PASSWORKS_LOG_LEVEL"
	EnvLogFormat     = "PASSWORKS_LOG_FORMAT"
)

// Hashing configuration overrides, keyed by core.Config field
var configEnv = map[string]string{
	"strategy":   "PASSWORKS_STRATEGY",
	"algorithm":  "PASSWORKS_ALGORITHM",
	"iterations": "PASSWORKS_ITERATIONS",
	"keyLength":  "PASSWORKS_KEY_LENGTH",
}

const (
	BackendBolt    = "bolt"
	BackendKeyring = "keyring"
	BackendRedis   = "redis"

	DefaultDatabase = ".passworks"
)

// Settings selects the backend and logging for one CLI invocation
type Settings struct {
	Backend       string
	Database      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LogLevel      string
	LogFormat     string
}

// LoadSettings reads Settings from the environment
func LoadSettings() Settings {
	redisDB, err := strconv.Atoi(Env(EnvRedisDB, "0"))
	if err != nil {
		redisDB = 0
	}

	return Settings{
		Backend:       Env(EnvBackend, BackendBolt),
		Database:      Env(EnvDatabase, DefaultDatabase),
		RedisAddr:     Env(EnvRedisAddr, "localhost:6379"),
		RedisPassword: Env(EnvRedisPassword, ""),
		RedisDB:       redisDB,
		LogLevel:      Env(EnvLogLevel, "warn"),
		LogFormat:     Env(EnvLogFormat, "text"),
	}
}

// Env returns the value of the environment variable named by the key.
// If the variable is not present in the environment, it returns fallback.
func Env(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// configFromEnv collects the hashing overrides present in the environment
func configFromEnv() map[string]string {
	fields := make(map[string]string, len(configEnv))
	for field, key := range configEnv {
		if val, ok := os.LookupEnv(key); ok {
			fields[field] = val
		}
	}
	return fields
}
