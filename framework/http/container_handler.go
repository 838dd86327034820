package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-ioc/framework/container"
)

// Binding is one entry of the /bindings listing.
type Binding struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// ContainerHandler exposes read-only introspection of c:
//
//	GET /bindings   registered keys as JSON
//	GET /trace      last resolution graph as text, 404 when none was recorded
//
// Mount it under a prefix:
//
//	router.Mount("/_container", gohttp.ContainerHandler(c))
func ContainerHandler(c *container.Container) http.Handler {
	r := chi.NewRouter()

	r.Get("/bindings", func(w http.ResponseWriter, _ *http.Request) {
		keys := c.Keys()
		out := make([]Binding, 0, len(keys))
		for _, k := range keys {
			out = append(out, Binding{Key: k.String(), Type: container.TypeName(k.Type), ID: k.ID})
		}
		NewResponse(w).Success(out)
	})

	r.Get("/trace", func(w http.ResponseWriter, _ *http.Request) {
		res := NewResponse(w)
		trace := c.LastTrace()
		if trace == nil {
			res.NotFound("No resolution has been traced.")
			return
		}
		body := trace.Render()
		if trace.Err != nil {
			body += "\nerror: " + trace.Err.Error() + "\n"
		}
		res.Text(http.StatusOK, body)
	})

	return r
}
