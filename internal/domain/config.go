package domain

import "time"

// Config represents the resolver settings loaded from config.yaml and flags.
type Config struct {
	Resolve ResolveConfig
	Output  OutputConfig
}

type ResolveConfig struct {
	Policy          BareDomainPolicy
	Timeout         time.Duration
	FollowRedirects bool
}

type OutputConfig struct {
	Format string
}

// DefaultConfig provides sane defaults if config.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		Resolve: ResolveConfig{
			Policy:          PolicyDefaultName,
			Timeout:         10 * time.Second,
			FollowRedirects: true,
		},
		Output: OutputConfig{
			Format: "pretty",
		},
	}
}
