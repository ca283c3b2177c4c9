package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const unknownBuildValue = "unknown"

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Service   string
	Version   string
	Commit    string
	BuildDate string
}

func (b BuildInfo) labelValue(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}

// RegisterBuildInfo publishes a constant <namespace>_build_info gauge set to 1
// and labelled with service, version, commit and build_date.
func (p *Provider) RegisterBuildInfo(info BuildInfo) error {
	name := "build_info"
	if p.namespace != "" {
		name = p.namespace + "_" + name
	}

	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: "Build information of the running service",
	}, []string{"service", "version", "commit", "build_date"})

	if err := p.registry.Register(gauge); err != nil {
		return fmt.Errorf("failed to register build info: %w", err)
	}

	gauge.WithLabelValues(
		info.labelValue(info.Service),
		info.labelValue(info.Version),
		info.labelValue(info.Commit),
		info.labelValue(info.BuildDate),
	).Set(1)
	return nil
}
