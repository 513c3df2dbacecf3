// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/jitc/internal/core/domain"
)

// Executor defines the interface for running external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command, streaming its output to the logger and the
	// active telemetry vertex.
	//
	// It returns an error carrying the exit code if the process fails.
	Run(ctx context.Context, cmd *domain.Command) error

	// Output executes the command and returns its standard output.
	// Standard error is streamed like Run.
	Output(ctx context.Context, cmd *domain.Command) ([]byte, error)
}
