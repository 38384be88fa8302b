package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"stayfinder/internal/backend"
	"stayfinder/internal/config"
	"stayfinder/internal/database"
	"stayfinder/internal/modules/account"
	"stayfinder/internal/modules/catalog"
	"stayfinder/internal/modules/enrich"
	"stayfinder/internal/modules/reservation"
	"stayfinder/internal/modules/search"
	jwtsvc "stayfinder/internal/pkg/jwt"
	"stayfinder/internal/pkg/response"
	"stayfinder/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("loading configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	db, err := database.Connect(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.WithError(err).Fatal("connecting cache database")
	}
	if err := db.AutoMigrate(&repository.CachedReservation{}); err != nil {
		logger.WithError(err).Fatal("migrating cache schema")
	}

	client := backend.New(backend.Config{
		BaseURL:         cfg.BackendBaseURL,
		PublicImageHost: cfg.PublicImageHost,
		Timeout:         cfg.RequestTimeout,
		Logger:          logger,
	})

	cacheRepo := repository.NewReservationCacheRepository(db)

	searchService := search.NewService(client, logger)
	enrichService := enrich.NewService(client, cfg.EnrichWorkers, logger)
	reservationService := reservation.NewService(client, cacheRepo, logger)
	accountService := account.NewService(client, logger)
	catalogService := catalog.NewService(client, logger)

	searchHandler := search.NewHandler(searchService, enrichService)
	reservationHandler := reservation.NewHandler(reservationService)
	accountHandler := account.NewHandler(accountService)
	catalogHandler := catalog.NewHandler(catalogService)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		// public
		accountHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(bearerMiddleware())
		{
			searchHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			accountHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.WithField("addr", cfg.ListenAddr).Info("gateway listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

// bearerMiddleware extracts the upstream-issued token, rejects obviously
// stale or malformed ones, and exposes the token and user id to handlers.
// Signature verification stays upstream, with the signing secret.
func bearerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}

		token := strings.TrimPrefix(h, "Bearer ")
		identity, err := jwtsvc.Extract(token)
		if err != nil {
			if errors.Is(err, jwtsvc.ErrExpired) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(jwtsvc.ContextTokenKey, token)
		c.Set(jwtsvc.ContextUserIDKey, identity.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", msg)
	c.Abort()
}
