// Package main is the entry point for the Milestone Trucks voice agent webhook service.
//
// @title           Milestone Trucks Voice Agent API
// @version         1.0.0
// @description     Webhook tools for the Milestone Trucks phone sales assistant.
//
//	The voice platform calls these endpoints mid-conversation to check service areas,
//	recommend and quantify materials, estimate delivery, build carts and look up orders.
//
// @contact.name   Milestone Trucks Support
// @contact.url    https://milestonetrucks.com
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>" signed with WEBHOOK_JWT_SECRET. Required if authentication is enabled.
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 Static API key. Required if authentication is enabled and no bearer token is sent.
//
// @tag.name        Tools
// @tag.description Voice agent webhook tools
//
// @tag.name        Knowledge
// @tag.description Material reference data and quotes
//
// @tag.name        Logs
// @tag.description Stored request and tool-call logs
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	_ "github.com/milestonetrucks/voice-agent/docs" // swagger docs

	"github.com/milestonetrucks/voice-agent/config"
	"github.com/milestonetrucks/voice-agent/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to read .env")
	}
	cfg := config.Load()

	a, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(a.Router, cfg.Server.Port, cfg.Server.RequestTimeout)
	runErr := server.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown incomplete")
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
