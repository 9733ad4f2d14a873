package repositories

import "context"

// BuildRepository runs the project's build command.
type BuildRepository interface {
	Run(ctx context.Context, dir, command string) error
}
