package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mange/backend/internal/cloud"
	"github.com/mange/backend/internal/config"
	"github.com/mange/backend/internal/database"
)

// Full snapshot of the primary store into the backup store, plus an optional
// JSON export to S3 when cloud services are enabled.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx := context.Background()

	src, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("source connect failed")
	}
	defer src.Close()

	dst, err := database.Open(config.BackupDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("backup store connect failed")
	}
	defer dst.Close()

	if err := database.Snapshot(ctx, src, dst); err != nil {
		log.Fatal().Err(err).Msg("snapshot failed")
	}
	log.Info().Msg("snapshot copied to backup store")

	if !config.UseCloudServices() {
		return
	}

	dump, err := database.Dump(ctx, src)
	if err != nil {
		log.Fatal().Err(err).Msg("dump failed")
	}

	store, err := cloud.NewSnapshotStore(ctx, config.AWSRegion(), config.S3Bucket())
	if err != nil {
		log.Fatal().Err(err).Msg("s3 client failed")
	}

	key := "snapshots/" + time.Now().UTC().Format("2006-01-02T15-04-05") + ".json"
	url, err := store.Upload(ctx, key, dump)
	if err != nil {
		log.Fatal().Err(err).Msg("snapshot upload failed")
	}
	log.Info().Str("key", key).Str("url", url).Msg("snapshot exported")
}
