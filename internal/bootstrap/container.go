// Package bootstrap arma el grafo de dependencias una sola vez y lo entrega a los comandos.
package bootstrap

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-stock/internal/application/inventory"
	"github.com/jhoicas/pos-stock/internal/application/orders"
	"github.com/jhoicas/pos-stock/internal/domain/repository"
	"github.com/jhoicas/pos-stock/internal/infrastructure/memory"
	"github.com/jhoicas/pos-stock/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/pos-stock/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/pos-stock/internal/interfaces/http"
	"github.com/jhoicas/pos-stock/pkg/config"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Ports adaptadores de persistencia sobre los que se construyen los casos de uso.
type Ports struct {
	Tx        inventory.TxRunner
	Inventory repository.InventoryRepository
	Movements repository.StockMovementRepository
	Products  repository.ProductRepository
	Employees repository.EmployeeRepository
}

// Container dependencias de la aplicación.
type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	Inventory   *inventory.InventoryUseCase
	Movements   *inventory.MovementUseCase
	Fulfillment *orders.FulfillmentUseCase
	LowStock    *inventory.LowStockMonitor

	pool  *pgxpool.Pool
	redis *goredis.Client
}

// New conecta PostgreSQL (y Redis si está configurado) y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	ports := Ports{
		Tx:        postgres.NewTxRunner(pool),
		Inventory: postgres.NewInventoryRepository(pool),
		Movements: postgres.NewStockMovementRepository(pool),
		Products:  postgres.NewProductRepository(pool),
		Employees: postgres.NewEmployeeRepository(pool),
	}

	var publisher inventory.EventPublisher = inventory.NoopPublisher{}
	var client *goredis.Client
	if cfg.Redis.Enabled() {
		client, err = infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			pool.Close()
			return nil, err
		}
		publisher = infraredis.NewPublisher(client, cfg.Redis.Channel)
		log.Info().Str("addr", cfg.Redis.Addr).Str("channel", cfg.Redis.Channel).Msg("publicación de eventos en Redis habilitada")
	}

	c := Build(cfg, log, ports, publisher)
	c.pool = pool
	c.redis = client
	return c, nil
}

// NewInMemory construye el contenedor sobre un almacén en memoria (tests y demo sin BD).
func NewInMemory(cfg *config.Config, log zerolog.Logger, store *memory.Store) *Container {
	return Build(cfg, log, Ports{
		Tx:        store,
		Inventory: store.Inventory(),
		Movements: store.Movements(),
		Products:  store.Products(),
		Employees: store.Employees(),
	}, nil)
}

// Build construye los casos de uso sobre los puertos dados. publisher puede ser nil.
func Build(cfg *config.Config, log zerolog.Logger, p Ports, publisher inventory.EventPublisher) *Container {
	invUC := inventory.NewInventoryUseCase(p.Tx, p.Inventory, p.Products, p.Employees, log)
	movUC := inventory.NewMovementUseCase(p.Tx, p.Movements, p.Products, p.Employees, publisher, log)
	return &Container{
		Config:      cfg,
		Log:         log,
		Inventory:   invUC,
		Movements:   movUC,
		Fulfillment: orders.NewFulfillmentUseCase(p.Tx, movUC, log),
		LowStock:    inventory.NewLowStockMonitor(invUC, publisher, log),
	}
}

// HTTPApp crea la app Fiber con las rutas registradas.
func (c *Container) HTTPApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      c.Config.App.Name,
		ReadTimeout:  c.Config.HTTP.ReadTimeout,
		WriteTimeout: c.Config.HTTP.WriteTimeout,
		IdleTimeout:  c.Config.HTTP.IdleTimeout,
	})
	app.Use(recover.New())
	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory:   c.Inventory,
		Movements:   c.Movements,
		Fulfillment: c.Fulfillment,
		JWTSecret:   c.Config.JWT.Secret,
		ServiceName: c.Config.App.Name,
	})
	return app
}

// Close libera conexiones.
func (c *Container) Close() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("cerrar cliente Redis")
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
}
