package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-ioc/framework/app"
	"github.com/km-arc/go-ioc/framework/config"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/routing"
	"github.com/km-arc/go-ioc/internal/greeting"
)

func main() {
	application, err := app.New() // loads .env and CONFIG_FILE
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}

	if err := application.Register(&greeting.Provider{
		Salutation: config.Get("GREETING_SALUTATION", "Hello"),
		Style:      config.Get("GREETING_STYLE", greeting.DefaultStyle),
	}); err != nil {
		application.Logger().Error("register greeting provider", "error", err)
		os.Exit(1)
	}

	r, err := application.Router()
	if err != nil {
		application.Logger().Error("resolve router", "error", err)
		os.Exit(1)
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		res.Success(map[string]any{
			"message":  "Welcome to " + application.Config().App.Name,
			"bindings": application.Len(),
		})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {
		// GET /api/v1/greet/{name}?style=shout
		api.Get("/greet/{name}", greeting.Handler(application.Container))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Error("server error", "error", err)
		os.Exit(1)
	}
}
