package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mange/backend/internal/config"
	"github.com/mange/backend/internal/database"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		if err := database.Migrate(db.DB); err != nil {
			log.Fatal().Err(err).Msg("migrate up failed")
		}
		log.Info().Msg("schema up to date")
	case "down":
		if err := database.Drop(db.DB); err != nil {
			log.Fatal().Err(err).Msg("migrate down failed")
		}
		log.Info().Msg("schema reverted")
	default:
		log.Fatal().Str("command", command).Msg("unknown command, want up or down")
	}
}
