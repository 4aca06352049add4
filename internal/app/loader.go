package app

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the config file looked up in the working directory.
	ProjectConfigFile = "autistnet.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/autistnet"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger      *slog.Logger
	userPath    string
	projectPath string
}

// NewLoader creates a loader using the standard user and project paths.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger, projectPath: ProjectConfigFile}
	if home, err := os.UserHomeDir(); err == nil {
		l.userPath = filepath.Join(home, UserConfigDir, UserConfigFile)
	}
	return l
}

// WithPaths overrides the user and project config locations.
func (l *Loader) WithPaths(userPath, projectPath string) *Loader {
	l.userPath = userPath
	l.projectPath = projectPath
	return l
}

// UserConfigPath returns where the user-level config lives.
func (l *Loader) UserConfigPath() string { return l.userPath }

// Load builds the configuration, each layer overriding the previous:
//  1. DefaultConfig
//  2. user config (~/.config/autistnet/config.yaml)
//  3. project config (./autistnet.yaml)
//  4. explicit, the --config flag; it must exist when given
func (l *Loader) Load(explicit string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{l.userPath, l.projectPath} {
		if path == "" {
			continue
		}
		err := cfg.apply(path)
		switch {
		case err == nil:
			l.logger.Debug("Loaded config", slog.String("path", path))
		case errors.Is(err, os.ErrNotExist):
			l.logger.Debug("No config file", slog.String("path", path))
		default:
			return nil, err
		}
	}
	if explicit != "" {
		if err := cfg.apply(explicit); err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", explicit))
	}

	cfg.Home = expandHome(cfg.Home)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnsureUserConfig writes the defaults to the user config path if no file
// exists there yet, and reports whether it created one.
func (l *Loader) EnsureUserConfig() (bool, error) {
	if _, err := os.Stat(l.userPath); err == nil {
		return false, nil
	}
	if err := DefaultConfig().SaveToFile(l.userPath); err != nil {
		return false, err
	}
	l.logger.Info("Created default user config", slog.String("path", l.userPath))
	return true, nil
}
