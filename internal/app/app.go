// Package app wires configuration, stores and handlers into the voice agent service.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/milestonetrucks/voice-agent/config"
	"github.com/milestonetrucks/voice-agent/internal/http"
	"github.com/rs/zerolog/log"
)

// App is the initialized service: the router plus whatever must be released on exit.
type App struct {
	Router  *gin.Engine
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// InitializeApp validates cfg and wires every component. Optional stores (MongoDB,
// Redis) that cannot be reached are logged and skipped.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	kb, rec, err := LoadKnowledge(cfg.Business.KnowledgeDir)
	if err != nil {
		return nil, err
	}

	app := &App{}

	dbComponents := InitializeDatabase(cfg.Database)
	if dbComponents != nil {
		app.onClose("mongodb", dbComponents.Close)
	}

	catalogComponents := InitializeCatalog(cfg)
	app.onClose("catalog", catalogComponents.Close)

	services := InitializeServices(cfg.Business, catalogComponents.Catalog, rec)
	routerComponents := InitializeRouter(services, kb, dbComponents, catalogComponents, cfg)
	app.onClose("router", routerComponents.Close)

	app.Router = http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)
	return app, nil
}

func (a *App) onClose(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// Close releases resources in reverse order of creation.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			log.Error().Err(err).Str("component", c.name).Msg("Failed to close component")
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
