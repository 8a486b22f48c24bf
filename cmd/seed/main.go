package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/you-humble/sewing-inventory/internal/config"
	repository "github.com/you-humble/sewing-inventory/internal/repository/part"
	"github.com/you-humble/sewing-inventory/platform/clock"
	"github.com/you-humble/sewing-inventory/platform/closer"
	"github.com/you-humble/sewing-inventory/platform/logger"
)

func main() {
	count := flag.Int("n", 100, "number of sample parts to generate")
	keep := flag.Bool("keep", false, "keep existing parts instead of clearing the collection")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks a random one")
	flag.Parse()

	ctx, quit := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer quit()

	if err := run(ctx, *count, *keep, *seed); err != nil {
		logger.Error(ctx, "❌ Database seeding failed", logger.ErrorF(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, count int, keep bool, seed uint64) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := logger.Init(config.C().Logger.Level(), config.C().Logger.AsJSON()); err != nil {
		return err
	}
	closer.SetLogger(logger.L())

	defer func() {
		sdCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := closer.CloseAll(sdCtx); err != nil {
			logger.Error(sdCtx, "close resources", logger.ErrorF(err))
		}
	}()

	client, err := mongo.Connect(options.Client().ApplyURI(config.C().Mongo.DSN()))
	if err != nil {
		return err
	}
	closer.AddNamed("Mongo Client", func(ctx context.Context) error {
		return client.Disconnect(ctx)
	})

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}
	logger.Info(ctx, "MongoDB connection established for seeding")

	coll := client.
		Database(config.C().Mongo.DatabaseName()).
		Collection(config.C().Mongo.PartsCollection())

	if err := repository.EnsureIndexes(ctx, coll); err != nil {
		return err
	}

	repo := repository.NewPartRepository(coll)

	if !keep {
		deleted, err := repo.DeleteAll(ctx)
		if err != nil {
			return err
		}
		logger.Info(ctx, "Cleared existing parts data", logger.Int64("deleted", deleted))
	}

	n, err := repository.PartsBootstrap(ctx, repo, count, gofakeit.New(seed), clock.NewRealClock().Now())
	if err != nil {
		return err
	}

	logger.Info(ctx, "✅ Database seeding completed", logger.Int("inserted", n))
	return nil
}
