package main

import (
	"errors"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jask/robodir/internal/config"
	"github.com/jask/robodir/internal/mockapi"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("dotenv: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	fixtures := mockapi.DefaultFixtures()
	switch {
	case cfg.MockAPI.Generate > 0:
		fixtures = mockapi.Generate(cfg.MockAPI.Generate, cfg.MockAPI.Seed)
	case cfg.MockAPI.Fixtures != "":
		if fixtures, err = mockapi.LoadFixtures(cfg.MockAPI.Fixtures); err != nil {
			log.Fatalf("fixtures: %v", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := mockapi.NewRouter(fixtures, mockapi.Options{Logger: logger})

	logger.Sugar().Infow("mock api starting",
		"addr", cfg.MockAPI.Addr,
		"students", len(fixtures.Students),
		"courses", len(fixtures.Courses),
	)
	if err := r.Run(cfg.MockAPI.Addr); err != nil {
		logger.Sugar().Fatalw("mock api failed", "error", err)
	}
}
