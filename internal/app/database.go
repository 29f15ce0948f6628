package app

import (
	"context"

	"github.com/milestonetrucks/voice-agent/config"
	"github.com/milestonetrucks/voice-agent/internal/circuitbreaker"
	"github.com/milestonetrucks/voice-agent/internal/middleware"
	"github.com/milestonetrucks/voice-agent/internal/repository"
	"github.com/milestonetrucks/voice-agent/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds the MongoDB log store.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	LoggingService     service.LoggingService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and starts the async log writer.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without the log store")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if ttlDays > 0 {
		if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
		}
	}

	logsCB := circuitbreaker.New(breakerConfig(cfg, "mongodb-logs"))
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	loggingService := service.NewLoggingService(logsRepo)

	middleware.InitAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig())

	return &DatabaseComponents{
		DB:                 db,
		LoggingService:     loggingService,
		LogsCircuitBreaker: logsCB,
	}
}

// Close drains the async log writer, then disconnects.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	middleware.StopAsyncLogger()
	return d.DB.Close(ctx)
}

func breakerConfig(cfg config.DatabaseConfig, name string) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	}
}
