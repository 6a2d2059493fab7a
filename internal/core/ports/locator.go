// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/libload/internal/core/domain"

// ArtifactLocator maps coordinates to download locations.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type ArtifactLocator interface {
	// Locate returns the download URL and canonical cache file name for the coordinate.
	// It performs no I/O and is deterministic.
	Locate(coord domain.Coordinate) domain.Location
}
