package observability

import "context"

// HealthStatus represents the health state of a component or service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// Health describes the health of one provider.
type Health struct {
	Name      string       `json:"name" yaml:"name"`
	Status    HealthStatus `json:"status" yaml:"status"`
	Resources int          `json:"resources" yaml:"resources"`
	Message   string       `json:"message,omitempty" yaml:"message,omitempty"`
}

// ServiceHealth aggregates provider health. One unavailable provider
// degrades the service; all providers unavailable take it down.
type ServiceHealth struct {
	Service    string       `json:"service" yaml:"service"`
	Status     HealthStatus `json:"status" yaml:"status"`
	Version    string       `json:"version,omitempty" yaml:"version,omitempty"`
	Components []Health     `json:"components,omitempty" yaml:"components,omitempty"`
}

// HealthChecker is implemented by components that can report their health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) ServiceHealth
}

// NewServiceHealth creates a ServiceHealth with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service: service,
		Status:  HealthStatusUp,
		Version: version,
	}
}

// AddComponent records a provider result and recomputes the overall status.
func (sh *ServiceHealth) AddComponent(h Health) {
	sh.Components = append(sh.Components, h)

	down := 0
	for _, c := range sh.Components {
		if c.Status != HealthStatusUp {
			down++
		}
	}
	switch {
	case down == 0:
		sh.Status = HealthStatusUp
	case down == len(sh.Components):
		sh.Status = HealthStatusDown
	default:
		sh.Status = HealthStatusDegraded
	}
}
