package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	envAddress    = "AUTH_ADDRESS"
	envDSN        = "AUTH_DATABASE_DSN"
	envSecret     = "AUTH_JWT_SECRET"
	envTokenTTL   = "AUTH_TOKEN_TTL"
	envBcryptCost = "AUTH_BCRYPT_COST"
	envCookieName = "AUTH_COOKIE_NAME"
	envMode       = "AUTH_ENV"
)

// dotenvFile is loaded before the environment is read. Variables already set
// in the process environment win over the file.
var dotenvFile = ".env"

// parseEnv overlays AUTH_* variables. A malformed number or duration panics,
// in line with the other loaders.
func parseEnv(config *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envAddress); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(envDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envSecret); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(envTokenTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", envTokenTTL, err))
		}
		config.TokenTTL = d
	}
	if v, ok := os.LookupEnv(envBcryptCost); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", envBcryptCost, err))
		}
		config.BcryptCost = n
	}
	if v, ok := os.LookupEnv(envCookieName); ok {
		config.CookieName = v
	}
	if v, ok := os.LookupEnv(envMode); ok {
		config.Environment = v
	}
}
