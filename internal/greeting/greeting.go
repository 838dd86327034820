// Package greeting is a small service graph assembled through the
// container. It uses every ownership kind: Salutation by value, Clock by
// Ref, Formatter as an Exclusive and Audit as a Shared handle.
package greeting

import (
	"fmt"
	"strings"
	"time"

	"github.com/km-arc/go-ioc/framework/container"
	"github.com/km-arc/go-ioc/framework/factory"
)

// Salutation opens every greeting.
type Salutation string

// Clock stamps greetings.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Formatter renders a salutation and a name.
type Formatter interface {
	Format(salutation, name string) string
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(salutation, name string) string

func (f FormatterFunc) Format(salutation, name string) string { return f(salutation, name) }

// Audit counts greetings produced by one Greeter graph.
type Audit struct {
	Greeted int
}

// Message is what a Greeter produces.
type Message struct {
	Text    string    `json:"text"`
	Style   string    `json:"style,omitempty"`
	At      time.Time `json:"at"`
	Greeted int       `json:"greeted"`
}

// Greeter builds greetings from its injected collaborators.
type Greeter struct {
	salutation Salutation
	clock      container.Ref[Clock]
	format     container.Exclusive[Formatter]
	audit      container.Shared[Audit]
	style      string
}

// NewGreeter is the constructor registered with the container.
func NewGreeter(
	s Salutation,
	clock container.Ref[Clock],
	format container.Exclusive[Formatter],
	audit container.Shared[Audit],
) *Greeter {
	return &Greeter{salutation: s, clock: clock, format: format, audit: audit}
}

// WithFormatter swaps the owned formatter for f, taking ownership of it.
func (g *Greeter) WithFormatter(style string, f container.Exclusive[Formatter]) {
	g.format.Release()
	g.format = f.Take()
	g.style = style
}

// Greet greets name.
func (g *Greeter) Greet(name string) (Message, error) {
	if !g.format.Valid() {
		return Message{}, fmt.Errorf("greeting: formatter released")
	}
	audit := g.audit.Ptr()
	if audit == nil {
		return Message{}, fmt.Errorf("greeting: audit released")
	}
	audit.Greeted++
	return Message{
		Text:    g.format.Get().Format(string(g.salutation), name),
		Style:   g.style,
		At:      g.clock.Get().Now(),
		Greeted: audit.Greeted,
	}, nil
}

// Close releases the owned and shared collaborators.
func (g *Greeter) Close() {
	g.format.Release()
	g.audit.Release()
}

// ── Styles ────────────────────────────────────────────────────────────────────

// DefaultStyle is used when a Provider names none.
const DefaultStyle = "plain"

// Styles returns a registry with the built-in formatter styles.
//
//	plain    "Hello, Ada!"
//	shout    "HELLO, ADA!"
//	polite   "Hello, dear Ada." (honorific may be passed as first argument)
func Styles() *factory.Registry[Formatter] {
	r := factory.New[Formatter]("greeting styles")
	r.MustRegister("plain", func(...any) (Formatter, error) {
		return FormatterFunc(func(s, name string) string {
			return fmt.Sprintf("%s, %s!", s, name)
		}), nil
	})
	r.MustRegister("shout", func(...any) (Formatter, error) {
		return FormatterFunc(func(s, name string) string {
			return strings.ToUpper(fmt.Sprintf("%s, %s!", s, name))
		}), nil
	})
	r.MustRegister("polite", func(args ...any) (Formatter, error) {
		honorific := "dear"
		if len(args) > 0 {
			h, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("polite: honorific must be a string, got %T", args[0])
			}
			honorific = h
		}
		return FormatterFunc(func(s, name string) string {
			return fmt.Sprintf("%s, %s %s.", s, honorific, name)
		}), nil
	})
	return r
}
