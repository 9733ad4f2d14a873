package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "REBUILDGATE"
	gitDirName = ".git"

	keyRepositoryBase  = "repository_base"
	keyRootDirectories = "root_directories"
	keyArtifactName    = "artifact_name"
	keyRequireArtifact = "require_artifact"
	keyBuildCommand    = "build_command"
	keyEnforceBuild    = "enforce_build"
	keyMaxDepth        = "max_depth"
	keyExclude         = "exclude"
	keyGitBackend      = "git.backend"
	keyGitCacheSize    = "git.cache_size"
	keyExtractors      = "dependencies.extractors"
	keyImportKeyword   = "dependencies.import_keyword"
	keyNamespaceMarker = "dependencies.namespace_marker"
	keyPattern         = "dependencies.pattern"
	keyBasePath        = "dependencies.base_path"
	keyLogFilename     = "log.filename"
	keyLogLevel        = "log.level"
	keyLogMaxSize      = "log.max_size"
	keyLogMaxBackups   = "log.max_backups"
	keyLogMaxAge       = "log.max_age"
	keyLogCompress     = "log.compress"

	// GitBackendCLI shells out to the git executable.
	GitBackendCLI = "cli"
	// GitBackendNative reads the repository in-process with go-git.
	GitBackendNative = "native"

	// DefaultMaxDepth bounds every directory and dependency traversal.
	DefaultMaxDepth = 64

	defaultArtifactName    = "swagger"
	defaultBuildCommand    = "dotnet restore build.proj && dotnet build build.proj"
	defaultCacheSize       = 4096
	defaultImportKeyword   = "using"
	defaultNamespaceMarker = "EdgeZoneRP"
	defaultBasePath        = "src/EdgeZoneRP"
	defaultLogLevel        = "info"
	defaultLogMaxSize      = 10
	defaultLogMaxBackups   = 3
	defaultLogMaxAge       = 28
)

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Settings is the immutable configuration of a run, built once at startup.
type Settings struct {
	RepositoryBase  string             `mapstructure:"repository_base"  yaml:"repository_base"`
	RootDirectories []string           `mapstructure:"root_directories" yaml:"root_directories"`
	ArtifactName    string             `mapstructure:"artifact_name"    yaml:"artifact_name"`
	RequireArtifact bool               `mapstructure:"require_artifact" yaml:"require_artifact"`
	BuildCommand    string             `mapstructure:"build_command"    yaml:"build_command"`
	EnforceBuild    bool               `mapstructure:"enforce_build"    yaml:"enforce_build"`
	MaxDepth        int                `mapstructure:"max_depth"        yaml:"max_depth"`
	Exclude         []string           `mapstructure:"exclude"          yaml:"exclude"`
	Git             GitSettings        `mapstructure:"git"              yaml:"git"`
	Dependencies    DependencySettings `mapstructure:"dependencies"     yaml:"dependencies"`
	Log             LogSettings        `mapstructure:"log"              yaml:"log"`
}

// GitSettings selects how version control is queried.
type GitSettings struct {
	Backend   string `mapstructure:"backend"    yaml:"backend"`    // "cli" or "native"
	CacheSize int    `mapstructure:"cache_size" yaml:"cache_size"` // 0 disables commit-time caching
}

// DependencySettings configures the dependency extractors.
type DependencySettings struct {
	Extractors      []string `mapstructure:"extractors"       yaml:"extractors"`
	ImportKeyword   string   `mapstructure:"import_keyword"   yaml:"import_keyword"`
	NamespaceMarker string   `mapstructure:"namespace_marker" yaml:"namespace_marker"`
	Pattern         string   `mapstructure:"pattern"          yaml:"pattern"` // empty: derived from the marker
	BasePath        string   `mapstructure:"base_path"        yaml:"base_path"`
}

// LogSettings configures the optional rotating log file.
type LogSettings struct {
	Filename   string `mapstructure:"filename"    yaml:"filename"`
	Level      string `mapstructure:"level"       yaml:"level"`
	MaxSize    int    `mapstructure:"max_size"    yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"     yaml:"max_age"`
	Compress   bool   `mapstructure:"compress"    yaml:"compress"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{ //nolint:gochecknoglobals // static binding table
	"build-command": keyBuildCommand,
	"enforce-build": keyEnforceBuild,
	"max-depth":     keyMaxDepth,
	"git-backend":   keyGitBackend,
}

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() *Settings {
	settings := &Settings{}
	v := newViper()
	if err := v.Unmarshal(settings); err != nil {
		panic(fmt.Sprintf("default settings are not decodable: %v", err))
	}
	return settings
}

// NewSettings loads the configuration file at path (empty path: defaults only),
// applies REBUILDGATE_* environment overrides and the changed flags of flags.
func NewSettings(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	settings.BuildCommand = expandEnv(settings.BuildCommand)

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyRepositoryBase, "")
	v.SetDefault(keyRootDirectories, []string{"Controllers", "Attributes"})
	v.SetDefault(keyArtifactName, defaultArtifactName)
	v.SetDefault(keyRequireArtifact, true)
	v.SetDefault(keyBuildCommand, defaultBuildCommand)
	v.SetDefault(keyEnforceBuild, false)
	v.SetDefault(keyMaxDepth, DefaultMaxDepth)
	v.SetDefault(keyExclude, []string{})
	v.SetDefault(keyGitBackend, GitBackendCLI)
	v.SetDefault(keyGitCacheSize, defaultCacheSize)
	v.SetDefault(keyExtractors, []string{"namespace"})
	v.SetDefault(keyImportKeyword, defaultImportKeyword)
	v.SetDefault(keyNamespaceMarker, defaultNamespaceMarker)
	v.SetDefault(keyPattern, "")
	v.SetDefault(keyBasePath, defaultBasePath)
	v.SetDefault(keyLogFilename, "")
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyLogMaxSize, defaultLogMaxSize)
	v.SetDefault(keyLogMaxBackups, defaultLogMaxBackups)
	v.SetDefault(keyLogMaxAge, defaultLogMaxAge)
	v.SetDefault(keyLogCompress, true)

	return v
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".rebuildgate.yaml",
		".rebuildgate.yml",
		"rebuildgate.yaml",
		"rebuildgate.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Validate checks for required configuration values.
func (it *Settings) Validate() error {
	if len(it.RootDirectories) == 0 {
		return errors.New("root_directories must have at least one entry")
	}
	for i, name := range it.RootDirectories {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("root_directories[%d] must not be empty", i)
		}
	}
	if strings.TrimSpace(it.BuildCommand) == "" {
		return errors.New("build_command is required")
	}
	if it.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", it.MaxDepth)
	}
	if it.Git.Backend != GitBackendCLI && it.Git.Backend != GitBackendNative {
		return fmt.Errorf("git.backend must be %q or %q, got %q", GitBackendCLI, GitBackendNative, it.Git.Backend)
	}
	if it.Git.CacheSize < 0 {
		return fmt.Errorf("git.cache_size must not be negative, got %d", it.Git.CacheSize)
	}
	if len(it.Dependencies.Extractors) == 0 {
		return errors.New("dependencies.extractors must have at least one entry")
	}
	if it.Dependencies.Pattern != "" {
		if _, err := regexp.Compile(it.Dependencies.Pattern); err != nil {
			return fmt.Errorf("dependencies.pattern is not a valid regular expression: %w", err)
		}
	}
	return nil
}

// BaseDirectory resolves the repository base directory for the given working
// directory. Without an explicit repository_base, the working directory is cut
// before its first ".git" component, so hooks running from inside .git still
// resolve to the work tree. Other dot directories are kept.
func (it *Settings) BaseDirectory(workingDir string) string {
	if it.RepositoryBase != "" {
		if filepath.IsAbs(it.RepositoryBase) {
			return filepath.Clean(it.RepositoryBase)
		}
		return filepath.Join(workingDir, it.RepositoryBase)
	}

	cleaned := filepath.Clean(workingDir)
	for dir := cleaned; ; {
		parent := filepath.Dir(dir)
		if parent == dir {
			return cleaned
		}
		if filepath.Base(dir) == gitDirName {
			cleaned = parent
		}
		dir = parent
	}
}

// DependencyPattern returns the configured dependency pattern, or the default
// "<marker>.*?;" built from the namespace marker.
func (it *Settings) DependencyPattern() string {
	if it.Dependencies.Pattern != "" {
		return it.Dependencies.Pattern
	}
	return regexp.QuoteMeta(it.Dependencies.NamespaceMarker) + `.*?;`
}

// expandEnv expands ${ENV_VAR} references, leaving unset variables empty.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
