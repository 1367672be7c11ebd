package appctx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsarm/appctx/errors"
)

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

type spanishGreeter struct{}

func (spanishGreeter) Greet() string { return "hola" }

type repository struct {
	Rows int
}

// resetFacade clears the package-level state and restores it when the
// test finishes.
func resetFacade(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()

	prevCtx, prevMapper := ctx, printMapper
	prevStdout, prevStderr := stdout, stderr

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	ctx, printMapper = nil, nil
	stdout, stderr = out, errOut

	t.Cleanup(func() {
		ctx, printMapper = prevCtx, prevMapper
		stdout, stderr = prevStdout, prevStderr
	})

	return out, errOut
}

// newTestApp assembles and starts a container the way a host application
// would, facade bean included.
func newTestApp(t *testing.T) Container {
	t.Helper()

	e, err := NewEnvironment(NewMapSource("test", map[string]any{
		"app": map[string]any{
			"name": "demo",
		},
		"server.port": 8080,
	}))
	require.NoError(t, err)

	c := NewContainer(WithEnvironment(e))

	require.NoError(t, Register(c))
	require.NoError(t, RegisterMapper(c, DefaultMapper()))
	require.NoError(t, RegisterValue[greeter](c, "english", englishGreeter{}))
	require.NoError(t, RegisterValue(c, "repo", &repository{Rows: 3}))

	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() { _ = c.Stop(context.Background()) })

	return c
}

func TestContextSetDuringStart(t *testing.T) {
	resetFacade(t)

	assert.Nil(t, Context())

	c := newTestApp(t)
	assert.Same(t, c, Context())
}

func TestGetBean(t *testing.T) {
	resetFacade(t)
	newTestApp(t)

	instance, err := GetBean("english")
	require.NoError(t, err)
	assert.Equal(t, "hello", instance.(greeter).Greet())

	repo, err := GetBean("repo")
	require.NoError(t, err)
	assert.Equal(t, 3, repo.(*repository).Rows)
}

func TestGetBeanNotFound(t *testing.T) {
	resetFacade(t)
	newTestApp(t)

	_, err := GetBean("zzz")
	assert.True(t, errors.IsBeanNotFound(err))
	assert.Contains(t, err.Error(), "zzz")
}

func TestResolveByType(t *testing.T) {
	resetFacade(t)
	newTestApp(t)

	g, err := Resolve[greeter]()
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())

	repo := MustResolve[*repository]()
	assert.Equal(t, 3, repo.Rows)
}

func TestResolveByTypeNoMatch(t *testing.T) {
	resetFacade(t)
	newTestApp(t)

	_, err := Resolve[chan int]()
	assert.True(t, errors.IsBeanNotFound(err))
}

func TestResolveByTypeAmbiguous(t *testing.T) {
	resetFacade(t)
	c := newTestApp(t)

	require.NoError(t, RegisterValue[greeter](c, "spanish", spanishGreeter{}))

	_, err := Resolve[greeter]()
	assert.True(t, errors.IsBeanAmbiguous(err))
	assert.Contains(t, err.Error(), "english")
	assert.Contains(t, err.Error(), "spanish")
}

func TestProperties(t *testing.T) {
	resetFacade(t)
	newTestApp(t)

	assert.Equal(t, "demo", GetProp("app.name"))
	assert.Equal(t, "8080", GetProp("server.port"))

	assert.Equal(t, "", GetProp("app.missing"))
	assert.Equal(t, "fallback", GetProp("app.missing", "fallback"))

	value, ok := LookupProp("app.name")
	assert.True(t, ok)
	assert.Equal(t, "demo", value)

	_, ok = LookupProp("app.missing")
	assert.False(t, ok)

	assert.Equal(t, 8080, Env().GetInt("server.port"))
}

func TestObjectMapper(t *testing.T) {
	resetFacade(t)
	newTestApp(t)

	m, err := ObjectMapper()
	require.NoError(t, err)

	data, err := m.Marshal(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, string(data))
}

type person struct {
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

func TestPrintJSON(t *testing.T) {
	out, errOut := resetFacade(t)
	newTestApp(t)

	PrintJSON(person{Name: "John"})

	assert.Equal(t, `{"name":"John","age":null}`+"\n", out.String())
	assert.Zero(t, errOut.Len())
}

func TestPrintPrettyJSON(t *testing.T) {
	out, errOut := resetFacade(t)
	newTestApp(t)

	PrintPrettyJSON(person{Name: "John"})

	rendered := out.String()
	assert.True(t, strings.HasPrefix(rendered, "{\n"))
	assert.Contains(t, rendered, `"name": "John"`)
	assert.Contains(t, rendered, `"age": null`)
	assert.True(t, strings.HasSuffix(rendered, "}\n"))
	assert.Zero(t, errOut.Len())
}

func TestPrintJSONKeepsStreamAcrossCalls(t *testing.T) {
	out, errOut := resetFacade(t)
	newTestApp(t)

	PrintJSON(person{Name: "John"})
	PrintJSON(person{Name: "Jane"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"name":"John","age":null}`, lines[0])
	assert.Equal(t, `{"name":"Jane","age":null}`, lines[1])
	assert.Zero(t, errOut.Len())
}

func TestPrintJSONSerializationFailure(t *testing.T) {
	out, errOut := resetFacade(t)
	newTestApp(t)

	assert.NotPanics(t, func() { PrintJSON(make(chan int)) })

	assert.Zero(t, out.Len(), "nothing must reach stdout on failure")
	assert.Equal(t, 1, strings.Count(errOut.String(), "\n"))
	assert.Contains(t, errOut.String(), "appctx: PrintJSON:")
}

func TestPrintJSONMapperCached(t *testing.T) {
	resetFacade(t)
	newTestApp(t)

	PrintJSON(person{Name: "John"})
	first := printMapper
	require.NotNil(t, first)

	PrintJSON(person{Name: "Jane"})
	assert.Same(t, first, printMapper)

	assert.False(t, first.Options().AutoCloseTarget)
}

func TestPrintJSONWithoutMapperPanics(t *testing.T) {
	resetFacade(t)

	c := NewContainer()
	require.NoError(t, Register(c))
	require.NoError(t, c.Start(context.Background()))

	assert.Panics(t, func() { PrintJSON(person{Name: "John"}) })
}

func TestFacadeBeforeStartPanics(t *testing.T) {
	resetFacade(t)

	assert.Panics(t, func() { _, _ = GetBean("english") })
	assert.Panics(t, func() { _ = GetProp("app.name") })
}

func TestRegisterTwice(t *testing.T) {
	resetFacade(t)

	c := NewContainer()
	require.NoError(t, Register(c))

	err := Register(c)
	assert.True(t, errors.IsBeanAlreadyExists(err))
}
