package providers

import (
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/routing"
)

// The container builds a fresh instance on every resolution. Framework
// services that must be one per application are created up front and
// registered with a factory returning that instance.

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Registered types:
//   - *config.Config
//   - config.ContainerConfig  (the container section, by value)
//   - config.LogConfig        (the log section, by value)
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(c *container.Container) error {
	cfg := p.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	container.Register[*config.Config](c, func(*container.Resolver) (*config.Config, error) {
		return cfg, nil
	})
	container.Register[config.ContainerConfig](c, func(r *container.Resolver) (config.ContainerConfig, error) {
		ref, err := container.Inject[container.Ref[*config.Config]](r)
		if err != nil {
			return config.ContainerConfig{}, err
		}
		return ref.Get().Container, nil
	})
	container.Register[config.LogConfig](c, func(r *container.Resolver) (config.LogConfig, error) {
		ref, err := container.Inject[container.Ref[*config.Config]](r)
		if err != nil {
			return config.LogConfig{}, err
		}
		return ref.Get().Log, nil
	})
	return nil
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Registered types:
//   - *slog.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *slog.Logger
}

func (p *LoggingServiceProvider) Register(c *container.Container) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	container.Register[*slog.Logger](c, func(*container.Resolver) (*slog.Logger, error) {
		return logger, nil
	})
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. Access logs go to
// Logger when set.
//
// Registered types:
//   - *routing.Router
//
// On Boot, when app.debug is on outside production, the container
// introspection endpoints are mounted under Prefix (default "/_container")
// with caching disabled.
type RoutingServiceProvider struct {
	Prefix string
	Logger *slog.Logger
}

func (p *RoutingServiceProvider) Register(c *container.Container) error {
	var opts []routing.Option
	if p.Logger != nil {
		opts = append(opts, routing.WithLogger(p.Logger))
	}
	router := routing.New(opts...)
	container.Register[*routing.Router](c, func(*container.Resolver) (*routing.Router, error) {
		return router, nil
	})
	return nil
}

func (p *RoutingServiceProvider) Boot(c *container.Container) error {
	cfg, err := container.Resolve[*config.Config](c)
	if err != nil {
		return err
	}
	if !cfg.App.Introspection() {
		return nil
	}
	router, err := container.Resolve[*routing.Router](c)
	if err != nil {
		return err
	}
	prefix := p.Prefix
	if prefix == "" {
		prefix = "/_container"
	}
	router.Group(func(g *routing.Router) {
		g.Middleware(middleware.NoCache)
		g.Mount(prefix, gohttp.ContainerHandler(c))
	})
	return nil
}
