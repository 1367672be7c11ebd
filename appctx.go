// Package appctx exposes a running application's dependency-injection
// container through package-level accessors, so interactive sessions and
// scripting consoles can reach managed beans, configuration properties
// and a JSON printer without wiring of their own.
//
// The container stores itself here during start-up, through the bean
// registered by Register. Until that happens the accessors have no
// container and panic on use.
package appctx

import (
	"fmt"
	"io"
	"os"

	"github.com/mrsarm/appctx/internal/di"
	"github.com/mrsarm/appctx/internal/jsonx"
)

// BeanKey is the name the facade bean is registered under.
const BeanKey = "appctx"

var (
	// ctx is the process-wide container reference, set once during
	// container start-up via the App bean.
	ctx Container

	// printMapper is the keep-stream-open copy of the registered mapper,
	// derived on first print and cached for the process lifetime. The
	// first-use race is unguarded; concurrent first prints may derive the
	// copy more than once, with identical results.
	printMapper *Mapper

	// stdout and stderr are swappable for tests.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// App is the managed bean that captures the container reference. The
// container injects itself when the instance is created during start-up.
type App struct{}

// SetContainer stores the live container in the package-level reference.
func (a *App) SetContainer(c di.Container) {
	SetContext(c)
}

// Register adds the facade bean to the container under BeanKey. Call it
// while assembling the container, before Start.
func Register(c Container) error {
	return c.Register(BeanKey, func(di.Container) (any, error) {
		return &App{}, nil
	})
}

// SetContext stores the container reference used by all accessors.
// Normally called by the container itself through the App bean.
func SetContext(c Container) {
	ctx = c
}

// Context returns the stored container reference. Nil before start-up.
func Context() Container {
	return ctx
}

// GetBean returns the bean registered under name.
func GetBean(name string) (any, error) {
	return ctx.Resolve(name)
}

// Resolve returns the unique bean assignable to T. Zero matches fail with
// a not-found error, more than one with an ambiguity error.
func Resolve[T any]() (T, error) {
	return di.Inject[T](ctx)
}

// MustResolve returns the unique bean assignable to T or panics.
func MustResolve[T any]() T {
	return di.MustInject[T](ctx)
}

// Env returns the container's property-resolution environment.
func Env() *Environment {
	return ctx.Environment()
}

// GetProp returns the property value under key, or the optional default
// when the property is missing. Missing without a default is "".
func GetProp(key string, def ...string) string {
	return Env().GetString(key, def...)
}

// LookupProp returns the property value under key and whether it is set.
func LookupProp(key string) (string, bool) {
	return Env().Lookup(key)
}

// ObjectMapper returns the JSON mapper registered in the container.
func ObjectMapper() (*Mapper, error) {
	return di.Inject[*jsonx.Mapper](ctx)
}

// PrintJSON prints v as compact JSON plus a newline to standard output.
// Serialization and write failures are reported as a single line on
// standard error and never propagated.
func PrintJSON(v any) {
	if err := printJSONMapper().WriteValue(stdout, v); err != nil {
		fmt.Fprintf(stderr, "appctx: PrintJSON: %v\n", err)
		return
	}
	io.WriteString(stdout, "\n")
}

// PrintPrettyJSON prints v as indented JSON plus a newline to standard
// output, with PrintJSON's failure handling.
func PrintPrettyJSON(v any) {
	if err := printJSONMapper().WritePretty(stdout, v); err != nil {
		fmt.Fprintf(stderr, "appctx: PrintPrettyJSON: %v\n", err)
		return
	}
	io.WriteString(stdout, "\n")
}

// printJSONMapper returns the cached print mapper, deriving it from the
// registered mapper on first use. The copy keeps the output stream open
// across prints.
func printJSONMapper() *Mapper {
	if printMapper == nil {
		m, err := ObjectMapper()
		if err != nil {
			panic(err)
		}
		printMapper = m.Copy(func(o *MapperOptions) {
			o.AutoCloseTarget = false
		})
	}

	return printMapper
}
