package commands

// HookScript exports hookScript for testing.
var HookScript = hookScript //nolint:gochecknoglobals // test export

// HookMarker exports hookMarker for testing.
const HookMarker = hookMarker
