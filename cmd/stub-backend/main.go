package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorlink-admin-core/internal/stubserver"
	"github.com/noah-isme/tutorlink-admin-core/pkg/config"
	"github.com/noah-isme/tutorlink-admin-core/pkg/logger"
)

// stub-backend serves a self-contained, fixture-backed copy of the
// marketplace admin API for local development and integration testing.
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

	store := stubserver.NewStore()
	if err := store.Seed(); err != nil {
		logr.Sugar().Fatalw("failed to seed fixture store", "error", err)
	}

	tokens := stubserver.NewTokenManager(cfg.Stub.JWTSecret, cfg.Stub.JWTExpiration)

	r := stubserver.Router(stubserver.Params{
		Store:          store,
		Tokens:         tokens,
		Logger:         logr,
		AllowedOrigins: cfg.Stub.AllowedOrigins,
		Prefix:         cfg.Backend.APIPrefix,
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf(":%d", cfg.Stub.Port)
	logr.Sugar().Infow("stub backend starting", "addr", addr, "prefix", cfg.Backend.APIPrefix)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("stub backend failed", "error", err)
	}
}
