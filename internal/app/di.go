package app

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/you-humble/sewing-inventory/internal/config"
	repository "github.com/you-humble/sewing-inventory/internal/repository/part"
	service "github.com/you-humble/sewing-inventory/internal/service/part"
	thttp "github.com/you-humble/sewing-inventory/internal/transport/http/part/v1"
	"github.com/you-humble/sewing-inventory/platform/clock"
	"github.com/you-humble/sewing-inventory/platform/closer"
)

type PartRepository interface {
	service.PartRepository
	repository.BatchCreator
}

type PartHandler interface {
	Routes() chi.Router
}

type di struct {
	mongo      *mongo.Client
	collection *mongo.Collection

	clock      clock.Clock
	repository PartRepository
	service    thttp.InventoryService
	handler    PartHandler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) PartsCollection(ctx context.Context) *mongo.Collection {
	if d.collection == nil {
		d.collection = d.MongoDB(ctx).
			Database(config.C().Mongo.DatabaseName()).
			Collection(config.C().Mongo.PartsCollection())
	}

	return d.collection
}

func (d *di) Clock(_ context.Context) clock.Clock {
	if d.clock == nil {
		d.clock = clock.NewRealClock()
	}

	return d.clock
}

func (d *di) PartsRepository(ctx context.Context) PartRepository {
	if d.repository == nil {
		d.repository = repository.NewPartRepository(d.PartsCollection(ctx))
	}

	return d.repository
}

func (d *di) InventoryService(ctx context.Context) thttp.InventoryService {
	if d.service == nil {
		d.service = service.NewInventoryService(
			d.PartsRepository(ctx),
			d.Clock(ctx),
		)
	}

	return d.service
}

func (d *di) PartHandler(ctx context.Context) PartHandler {
	if d.handler == nil {
		d.handler = thttp.NewPartHandler(d.InventoryService(ctx))
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
