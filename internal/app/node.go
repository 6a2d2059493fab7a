package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/libload/internal/adapters/activator" //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/libload/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			activator.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[*metrics.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	activators, err := graft.Dep[*activator.Registry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, tracer, recorder, activators), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
