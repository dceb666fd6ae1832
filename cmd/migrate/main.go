package main

import (
	"context"
	"os"
	"time"

	mongoMigration "drivent/internal/migrations/mongo"
	"drivent/pkg/config"
)

const (
	JobName          = "mongo-migration"
	migrationTimeout = 120 * time.Second
)

func main() {
	cfg := config.Load(JobName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Mongo migration job")
	err := migrateMongo(cfg)
	cfg.GracefulShutdown()

	if err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		os.Exit(1)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrateMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return mongoMigration.RunMigration(ctx, db, cfg.Log)
}
