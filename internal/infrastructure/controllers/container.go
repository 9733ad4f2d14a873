package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewPrePushController); err != nil {
		return err
	}
	if err := container.Provide(NewCheckController); err != nil {
		return err
	}
	if err := container.Provide(NewInstallController); err != nil {
		return err
	}
	if err := container.Provide(NewInitController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	prePushController *PrePushController,
	checkController *CheckController,
	installController *InstallController,
	initController *InitController,
) *[]entities.Controller {
	return &[]entities.Controller{
		prePushController,
		checkController,
		installController,
		initController,
	}
}
