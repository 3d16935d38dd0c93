package ports

import "github.com/aalvaropc/nip05/internal/domain"

// ConfigLoader loads resolver settings from a source (e.g., a YAML file).
type ConfigLoader interface {
	LoadConfig(path string) (domain.Config, error)
}
