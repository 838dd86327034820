package greeting

import (
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/factory"
	gohttp "github.com/km-arc/go-ioc/framework/http"
	"github.com/km-arc/go-ioc/framework/routing"
)

// Provider registers the greeting graph and, on Boot, its routes.
//
// Registered types:
//   - Salutation, Clock, Audit
//   - Formatter            (Style, default "plain")
//   - Formatter[<style>]   one per name in Styles
//   - *Greeter
type Provider struct {
	container.BaseProvider

	Salutation string
	Style      string
	Styles     *factory.Registry[Formatter]
}

func (p *Provider) Register(c *container.Container) error {
	styles := p.Styles
	if styles == nil {
		styles = Styles()
	}
	style := p.Style
	if style == "" {
		style = DefaultStyle
	}
	salutation := Salutation(p.Salutation)
	if salutation == "" {
		salutation = "Hello"
	}

	container.Register[Salutation](c, func(*container.Resolver) (Salutation, error) {
		return salutation, nil
	})
	container.Register[Clock](c, func(*container.Resolver) (Clock, error) {
		return SystemClock{}, nil
	})
	container.RegisterNew[Audit](c)
	container.Register[Formatter](c, func(*container.Resolver) (Formatter, error) {
		return styles.Create(style)
	})
	for _, name := range styles.Names() {
		container.RegisterKey[Formatter](c, name, func(*container.Resolver) (Formatter, error) {
			return styles.Create(name)
		})
	}
	return container.RegisterType[*Greeter](c, NewGreeter)
}

// Boot adds the greeting routes to the application router:
//
//	GET  /greet/{name}?style=shout
//	POST /greet   {"name": "ada", "style": "polite"}
func (p *Provider) Boot(c *container.Container) error {
	router, err := container.Resolve[*routing.Router](c)
	if err != nil {
		return err
	}
	router.Get("/greet/{name}", Handler(c))
	router.Post("/greet", CreateHandler(c))
	return nil
}

// Handler greets the {name} route parameter. The optional ?style= query
// picks a registered formatter style.
func Handler(c *container.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := gohttp.NewResponse(w)
		msg, err := greet(c, routing.Param(r, "name"), r.URL.Query().Get("style"))
		if err != nil {
			res.Fail(err)
			return
		}
		res.Success(msg)
	}
}

// Request is the body accepted by CreateHandler.
type Request struct {
	Name  string `json:"name"`
	Style string `json:"style,omitempty"`
}

// CreateHandler greets the name posted as JSON and answers 201.
func CreateHandler(c *container.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := gohttp.NewResponse(w)

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			res.BadRequest("Invalid JSON body.")
			return
		}
		if req.Name == "" {
			res.BadRequest("The name field is required.")
			return
		}
		msg, err := greet(c, req.Name, req.Style)
		if err != nil {
			res.Fail(err)
			return
		}
		res.Created(msg)
	}
}

// greet resolves a fresh Greeter, swaps in the formatter registered under
// style when one is named, and greets name.
func greet(c *container.Container, name, style string) (Message, error) {
	g, err := container.Resolve[*Greeter](c)
	if err != nil {
		return Message{}, err
	}
	defer g.Close()

	if style != "" {
		f, err := container.ResolveKey[container.Exclusive[Formatter]](c, style)
		if err != nil {
			return Message{}, err
		}
		g.WithFormatter(style, f)
	}
	return g.Greet(name)
}
