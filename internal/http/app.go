// Package http holds the pieces the API router is assembled from: the App
// built by cmd/api and the Module contract implemented by the leads module.
package http

import (
	"context"

	"lead_qualification_backend/platform/config"
	"lead_qualification_backend/platform/logger"
)

// RouterConfig is the configuration the router reads: CORS, rate limits and
// the JWT secret guarding stored leads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs GET /api/ready.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is populated by cmd/api and handed to router.New.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health is optional; without it the service always reports ready.
	Health  HealthChecker
	Modules []Module
}
