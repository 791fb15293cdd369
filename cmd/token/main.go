// Command token hashes an API key for API_KEY_HASH or mints a bearer token
// from it with the configured JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"

	"booksim/internal/config"
	"booksim/internal/logging"
	"booksim/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	hash := flag.String("hash", "", "print the bcrypt hash of this API key")
	key := flag.String("key", "", "issue a token for this API key")
	flag.Parse()

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	cfg.LogNotices()

	switch {
	case *hash != "":
		h, err := service.HashAPIKey(*hash)
		if err != nil {
			log.Fatal().Err(err).Msg("could not hash key")
		}
		fmt.Println(h)
	case *key != "":
		tok, exp, err := service.NewAuthService(cfg.APIKeyHash, cfg.JWTSecret).IssueToken(*key)
		if err != nil {
			log.Fatal().Err(err).Msg("could not issue token")
		}
		log.Info().Time("expires", exp).Msg("token issued")
		fmt.Println(tok)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
