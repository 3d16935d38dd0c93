package config

import (
	"os"
	"path/filepath"

	"github.com/aalvaropc/nip05/internal/domain"
	"github.com/aalvaropc/nip05/internal/ports"
	"gopkg.in/yaml.v3"
)

// Loader reads config.yaml files.
type Loader struct{}

var _ ports.ConfigLoader = Loader{}

func (Loader) LoadConfig(path string) (domain.Config, error) {
	return LoadConfig(path)
}

// LoadConfig loads path and applies defaults. A missing file yields the
// defaults together with a KindNotFound error so callers can decide whether
// absence matters.
func LoadConfig(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, dto)
}

// DefaultPath is $XDG_CONFIG_HOME/nip05/config.yaml (or the platform
// equivalent). It returns "" when no user config dir can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "nip05", "config.yaml")
}
