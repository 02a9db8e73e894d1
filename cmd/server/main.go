package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/config"
	"github.com/iliyamo/shopifier/internal/database"
	"github.com/iliyamo/shopifier/internal/handler"
	"github.com/iliyamo/shopifier/internal/middleware"
	"github.com/iliyamo/shopifier/internal/queue"
	"github.com/iliyamo/shopifier/internal/repository"
	"github.com/iliyamo/shopifier/internal/router"
	"github.com/iliyamo/shopifier/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("bootstrap schema: %v", err)
	}
	cancel()

	// Redis is optional: without it carts fall back to an in-process store
	// and caching/rate limiting are disabled.
	rdb := config.NewRedisClient()
	var carts session.CartStore
	if rdb != nil {
		carts = session.NewRedisCartStore(rdb, time.Duration(cfg.SessionTTLMin)*time.Minute)
	} else {
		log.Printf("redis unavailable, using in-memory cart store")
		carts = session.NewMemoryCartStore()
	}

	users := repository.NewUserRepo(db)
	vendors := repository.NewVendorRepo(db)
	products := repository.NewProductRepo(db)
	orders := repository.NewOrderRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, vendors, carts)
	catalogHandler := handler.NewCatalogHandler(products)
	vendorHandler := handler.NewVendorHandler(products)
	orderHandler := handler.NewOrderHandler(orders, products)
	cartHandler := handler.NewCartHandler(carts)

	e := echo.New()
	e.Use(middleware.ResolveSession(cfg.SessionSecret, cfg.SessionTTLMin))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterCatalog(e, catalogHandler, middleware.NewCatalogCache(config.LoadCacheConfig(), rdb))
	router.RegisterCart(e, cartHandler)
	router.RegisterVendorInventory(e, vendorHandler)
	router.RegisterOrders(e, orderHandler)

	// Background consumer writing order.placed events to logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
