package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aalvaropc/nip05/internal/domain"
)

// Formats accepted by the output layer.
var Formats = []string{"pretty", "json"}

// MapConfig applies parsed values on top of domain.DefaultConfig.
func MapConfig(path string, yc YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if yc.NIP05.RequireName != nil && *yc.NIP05.RequireName {
		cfg.Resolve.Policy = domain.PolicyRequireName
	}
	if yc.NIP05.FollowRedirects != nil {
		cfg.Resolve.FollowRedirects = *yc.NIP05.FollowRedirects
	}

	if s := strings.TrimSpace(yc.NIP05.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return domain.DefaultConfig(), invalidField(path, "nip05.timeout", err.Error())
		}
		if d <= 0 {
			return domain.DefaultConfig(), invalidField(path, "nip05.timeout", "must be positive")
		}
		cfg.Resolve.Timeout = d
	}

	if s := strings.TrimSpace(yc.NIP05.Format); s != "" {
		if err := ValidateFormat(s); err != nil {
			return domain.DefaultConfig(), invalidField(path, "nip05.format", err.Error())
		}
		cfg.Output.Format = s
	}

	return cfg, nil
}

// ValidateFormat reports whether f is a supported output format.
func ValidateFormat(f string) error {
	for _, ok := range Formats {
		if f == ok {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (expected %s)", f, strings.Join(Formats, "|"))
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
