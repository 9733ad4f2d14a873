package build

// ShellFor exports shellFor for testing.
var ShellFor = shellFor //nolint:gochecknoglobals // test export
