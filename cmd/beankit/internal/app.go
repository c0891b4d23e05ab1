// Package internal holds the CLI application logic.
package internal

import (
	"context"

	"beankit/internal/commands"
)

// Run builds the command tree and executes it. OS dependencies are passed
// in so tests can drive it.
func Run(ctx context.Context, getenv func(string) string) error {
	return commands.NewRootCmd(getenv).ExecuteContext(ctx)
}
