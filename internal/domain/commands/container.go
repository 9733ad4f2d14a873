package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewInspector); err != nil {
		return err
	}
	if err := container.Provide(NewPushGateCommand); err != nil {
		return err
	}
	if err := container.Provide(NewCheckCommand); err != nil {
		return err
	}
	if err := container.Provide(NewInstallCommand); err != nil {
		return err
	}
	if err := container.Provide(NewInitCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *PushGateCommand) PushGate {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *CheckCommand) Check {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *InstallCommand) Install {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *InitCommand) Init {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
