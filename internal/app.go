package internal

import (
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// AppInternal holds the controllers exposed as CLI subcommands.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the registered controllers in subcommand order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
