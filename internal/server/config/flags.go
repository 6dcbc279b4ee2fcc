package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN, empty for the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-k int      bcrypt cost factor
//	-n string   session cookie name
//	-m string   environment: development | production
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-n", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int("t", int(config.TokenTTL.Minutes()), "token_ttl (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost factor")
	fs.StringVar(&config.CookieName, "n", config.CookieName, "session cookie name")
	fs.StringVar(&config.Environment, "m", config.Environment, "environment (development|production)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -t overrides the TTL; the minute granularity would
	// otherwise truncate sub-minute values coming from JSON or the environment.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenTTL = time.Duration(*ttl) * time.Minute
		}
	})
}
