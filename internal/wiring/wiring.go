// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/libload/internal/adapters/activator"
	_ "go.trai.ch/libload/internal/adapters/config"
	_ "go.trai.ch/libload/internal/adapters/logger"
	_ "go.trai.ch/libload/internal/adapters/metrics"
	_ "go.trai.ch/libload/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/libload/internal/app"
)
