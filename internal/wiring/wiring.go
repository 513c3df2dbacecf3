// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/jitc/internal/adapters/cachedir"
	_ "go.trai.ch/jitc/internal/adapters/cas"
	_ "go.trai.ch/jitc/internal/adapters/config"
	_ "go.trai.ch/jitc/internal/adapters/fs"
	_ "go.trai.ch/jitc/internal/adapters/importer"
	_ "go.trai.ch/jitc/internal/adapters/loader"
	_ "go.trai.ch/jitc/internal/adapters/lock"
	_ "go.trai.ch/jitc/internal/adapters/logger"
	_ "go.trai.ch/jitc/internal/adapters/platform"
	_ "go.trai.ch/jitc/internal/adapters/searchpath"
	_ "go.trai.ch/jitc/internal/adapters/shell"
	_ "go.trai.ch/jitc/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/jitc/internal/app"
)
