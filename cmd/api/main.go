package main

import (
	"fmt"
	"log"

	_ "pix_checkout/docs"
	"pix_checkout/internal/adapter/http/routes"
	"pix_checkout/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           PIX Checkout Session API
// @version         1.0
// @description     PIX payment sessions with provider fallback, status reconciliation and conversion attribution.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description The PROXY_SECRET value, optionally prefixed with "Bearer ".

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("[server] starting %s", startupSummary(cfg))

	if err := routes.Run(cfg); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

// startupSummary lists the effective wiring without any secret values.
func startupSummary(cfg config.Config) string {
	mediated := "in_process"
	if cfg.Mediator.BaseURL != "" {
		mediated = "remote"
	}
	return fmt.Sprintf("env=%s provider=%s mock=%t direct=%t mediated=%s store=%s analytics=%t",
		cfg.Environment,
		cfg.Provider.Kind,
		cfg.Provider.MockEnabled,
		cfg.Provider.DirectSecretKey != "",
		mediated,
		cfg.Session.Store,
		cfg.Analytics.Enabled(),
	)
}
