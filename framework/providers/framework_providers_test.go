package providers_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/providers"
	"github.com/km-arc/go-ioc/framework/routing"
)

func boot(t *testing.T, list ...container.ServiceProvider) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	for _, p := range list {
		if err := reg.Register(p); err != nil {
			t.Fatalf("Register(%T): %v", p, err)
		}
	}
	if err := reg.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	return c
}

func TestConfigServiceProvider(t *testing.T) {
	cfg := config.Defaults()
	cfg.Container.MaxDepth = 9
	cfg.Log.Format = "json"

	c := boot(t, &providers.ConfigServiceProvider{Config: cfg})

	got, err := container.Resolve[*config.Config](c)
	if err != nil {
		t.Fatalf("Resolve config: %v", err)
	}
	if got != cfg {
		t.Error("expected the registered *config.Config instance")
	}

	cc, err := container.Resolve[config.ContainerConfig](c)
	if err != nil || cc.MaxDepth != 9 {
		t.Errorf("ContainerConfig: got %+v, %v", cc, err)
	}
	lc, err := container.Resolve[config.LogConfig](c)
	if err != nil || lc.Format != "json" {
		t.Errorf("LogConfig: got %+v, %v", lc, err)
	}
}

func TestConfigServiceProvider_DefaultsWhenNil(t *testing.T) {
	c := boot(t, &providers.ConfigServiceProvider{})
	got, err := container.Resolve[*config.Config](c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.App.Name != "GoIoC" {
		t.Errorf("expected defaults, got %+v", got.App)
	}
}

func TestLoggingServiceProvider(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	c := boot(t, &providers.LoggingServiceProvider{Logger: logger})

	got, err := container.Resolve[*slog.Logger](c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != logger {
		t.Error("expected the registered logger instance")
	}
}

func TestRoutingServiceProvider_SameRouterEveryResolve(t *testing.T) {
	cfg := config.Defaults()
	c := boot(t,
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.RoutingServiceProvider{},
	)

	r1 := container.MustResolve[*routing.Router](c)
	r2 := container.MustResolve[*routing.Router](c)
	if r1 != r2 {
		t.Error("expected one router per container")
	}
}

func TestRoutingServiceProvider_MountsIntrospection(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		debug bool
		want  int
	}{
		{"local debug", "local", true, http.StatusOK},
		{"local", "local", false, http.StatusNotFound},
		{"production debug", "production", true, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.App.Env = tt.env
			cfg.App.Debug = tt.debug
			c := boot(t,
				&providers.ConfigServiceProvider{Config: cfg},
				&providers.RoutingServiceProvider{},
			)

			router := container.MustResolve[*routing.Router](c)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container/bindings", nil))
			if rr.Code != tt.want {
				t.Errorf("got %d want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusOK && !strings.Contains(rr.Header().Get("Cache-Control"), "no-cache") {
				t.Errorf("introspection responses should not be cached, Cache-Control=%q", rr.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestRoutingServiceProvider_AccessLog(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Defaults()
	c := boot(t,
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.RoutingServiceProvider{Logger: slog.New(slog.NewTextHandler(&buf, nil))},
	)
	router := container.MustResolve[*routing.Router](c)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if !strings.Contains(buf.String(), "http request") || !strings.Contains(buf.String(), "status=404") {
		t.Errorf("expected an access log line, got %q", buf.String())
	}
}

func TestRoutingServiceProvider_BootNeedsConfig(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	if err := reg.Register(&providers.RoutingServiceProvider{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Boot(); !container.IsNotRegistered(err) {
		t.Errorf("expected NotRegistered from Boot, got %v", err)
	}
}
