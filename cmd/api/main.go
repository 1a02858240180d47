package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/enrollment-api/api/swagger"
	"github.com/noah-isme/enrollment-api/internal/handler"
	internalmiddleware "github.com/noah-isme/enrollment-api/internal/middleware"
	"github.com/noah-isme/enrollment-api/internal/repository"
	"github.com/noah-isme/enrollment-api/internal/service"
	"github.com/noah-isme/enrollment-api/pkg/cache"
	"github.com/noah-isme/enrollment-api/pkg/config"
	"github.com/noah-isme/enrollment-api/pkg/database"
	"github.com/noah-isme/enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/enrollment-api/pkg/middleware/requestid"
)

// @title Enrollment API
// @version 1.0.0
// @description Students, subjects and enrollments
// @BasePath /api/v1
// @schemes http

const cachePrefix = "enrollment:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, read cache disabled", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheSvc = service.NewCacheService(repository.NewCacheRepository(client, cachePrefix), metrics, cfg.Cache.TTL, logr)
		}
	}

	opts := service.Options{
		Validator:    service.NewValidator(),
		Logger:       logr,
		Cache:        cacheSvc,
		Metrics:      metrics,
		StrictErrors: cfg.StrictErrors(),
	}

	var observer repository.QueryObserver
	if metrics != nil {
		observer = metrics
	}
	studentRepo := repository.NewStudentRepository(db, observer)
	subjectRepo := repository.NewSubjectRepository(db, observer)
	enrollmentRepo := repository.NewEnrollmentRepository(db, observer)

	studentSvc := service.NewStudentService(studentRepo, opts)
	subjectSvc := service.NewSubjectService(subjectRepo, opts)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, opts)
	exportSvc := service.NewExportService(enrollmentSvc, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(corsmiddleware.DefaultOptions(cfg.CORS.AllowedOrigins)))
	routeOpts := handler.RouteOptions{Prefix: cfg.APIPrefix, Metrics: metrics != nil}
	if cfg.Legacy.Enabled {
		routeOpts.LegacyPath = cfg.Legacy.Path
	}
	r.Use(internalmiddleware.Metrics(metrics, routeOpts.LegacyPath))
	handler.Register(r, handler.Handlers{
		Students:    handler.NewStudentHandler(studentSvc, enrollmentSvc),
		Subjects:    handler.NewSubjectHandler(subjectSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc, exportSvc),
		Health:      handler.NewHealthHandler(db, metrics),
	}, routeOpts)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"error_mode", cfg.ErrorMode,
		"cache", cacheSvc.Enabled(),
		"legacy_route", routeOpts.LegacyPath,
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
