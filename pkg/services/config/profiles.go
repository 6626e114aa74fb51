package config

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Destination describes where a profile submits report requests.
type Destination struct {
	Mode     domain.ProfileType
	Endpoint string
	Latency  time.Duration
}

// Registry reads named destination profiles from an ini file, one section per
// profile:
//
//	[local]
//	type = http
//	endpoint = http://localhost:8090/api/v1/documents
//
//	[offline]
//	type = simulated
//	latency_ms = 150
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetDestination(ctx context.Context, profile string) (*Destination, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		mode, err := parseMode(section.Key("type").String())
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", section.Name(), err)
		}
		profiles = append(profiles, domain.ConfigProfile{Name: section.Name(), Type: mode})
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetDestination(_ context.Context, profile string) (*Destination, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	mode, err := parseMode(section.Key("type").String())
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile, err)
	}

	dest := &Destination{
		Mode:     mode,
		Endpoint: section.Key("endpoint").String(),
		Latency:  time.Duration(section.Key("latency_ms").MustInt(0)) * time.Millisecond,
	}
	if mode == domain.ProfileTypeHTTP && dest.Endpoint == "" {
		return nil, fmt.Errorf("profile %s: endpoint is required for http destinations", profile)
	}
	return dest, nil
}

func parseMode(raw string) (domain.ProfileType, error) {
	switch domain.ProfileType(raw) {
	case domain.ProfileTypeHTTP, domain.ProfileTypeSimulated:
		return domain.ProfileType(raw), nil
	case "":
		return domain.ProfileTypeSimulated, nil
	default:
		return "", fmt.Errorf("unknown destination type %q", raw)
	}
}
