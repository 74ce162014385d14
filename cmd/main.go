package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wholesale/config"
	"wholesale/controllers"
	"wholesale/database"
	"wholesale/logger"
	"wholesale/metrics"
	"wholesale/middleware"
	"wholesale/routes"
	"wholesale/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	cfg, cfgErr := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfgErr != nil {
		log.Fatal("Invalid configuration", "error", cfgErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongo, err := database.ConnectMongo(ctx, database.Options{
		URI:         cfg.MongoURI,
		DBName:      cfg.DBName,
		MaxPoolSize: cfg.MongoMaxPoolSize,
	})
	if err != nil {
		log.Fatal("MongoDB connection error", "error", err)
	}
	log.Info("Connected to MongoDB", "db", cfg.DBName, "pid", os.Getpid())

	if err := database.EnsureIndexes(ctx, mongo.DB); err != nil {
		log.Warn("Index bootstrap failed", "error", err)
	}

	m := metrics.NewRegistry()
	dashboard := services.NewDashboardService(
		database.NewOrderStore(mongo.DB),
		database.NewProductStore(mongo.DB),
		m,
	)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log), middleware.Metrics(m))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	routes.RegisterRoutes(r, routes.Deps{
		Dashboard: controllers.NewDashboardController(dashboard, log, cfg.QueryTimeout),
		Auth:      middleware.AuthMiddleware([]byte(cfg.JWTSecret), database.NewTokenBlacklist(mongo.DB), log),
		Metrics:   m,
		DB:        mongo,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP listening", "addr", cfg.Addr(), "pid", os.Getpid())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown", "error", err)
	}
	if err := mongo.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect", "error", err)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
