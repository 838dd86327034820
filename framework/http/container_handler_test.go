package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/km-arc/go-ioc/framework/container"
	gohttp "github.com/km-arc/go-ioc/framework/http"
)

type clock interface{ Now() int }

type fixedClock struct{}

func (fixedClock) Now() int { return 42 }

type ticker struct{ clock container.Ref[clock] }

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c := container.New(container.WithTracing(true))
	container.Register[clock](c, func(*container.Resolver) (clock, error) { return fixedClock{}, nil })
	container.RegisterKey[clock](c, "broken", func(*container.Resolver) (clock, error) {
		return nil, errors.New("no time")
	})
	if err := container.RegisterType[ticker](c, func(cl container.Ref[clock]) ticker {
		return ticker{clock: cl}
	}); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	return c
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestContainerHandler_Bindings(t *testing.T) {
	c := newContainer(t)
	h := gohttp.ContainerHandler(c)

	rr := get(t, h, "/bindings")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var body struct {
		Data []gohttp.Binding `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 3 {
		t.Fatalf("expected 3 bindings, got %d: %+v", len(body.Data), body.Data)
	}

	var named int
	for _, b := range body.Data {
		if b.ID == "broken" {
			named++
			if !strings.HasSuffix(b.Key, "[broken]") {
				t.Errorf("named key rendered as %q", b.Key)
			}
		}
	}
	if named != 1 {
		t.Errorf("expected one named binding, got %d", named)
	}
}

func TestContainerHandler_Trace(t *testing.T) {
	c := newContainer(t)
	h := gohttp.ContainerHandler(c)

	if rr := get(t, h, "/trace"); rr.Code != http.StatusNotFound {
		t.Fatalf("before any resolve: got %d want 404", rr.Code)
	}

	if _, err := container.Resolve[ticker](c); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	rr := get(t, h, "/trace")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "ticker") || !strings.Contains(rr.Body.String(), "clock") {
		t.Errorf("trace should mention both types:\n%s", rr.Body.String())
	}

	if _, err := container.ResolveKey[clock](c, "broken"); err == nil {
		t.Fatal("expected factory error")
	}
	rr = get(t, h, "/trace")
	if !strings.Contains(rr.Body.String(), "error: ") {
		t.Errorf("failed trace should carry the error:\n%s", rr.Body.String())
	}
}
