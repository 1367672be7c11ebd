package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsarm/appctx/errors"
)

func TestLookupTyped(t *testing.T) {
	c := NewContainer()

	require.NoError(t, RegisterValue[greeter](c, "english", englishGreeter{}))

	g, err := Lookup[greeter](c, "english")
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())
}

func TestLookupTypeMismatch(t *testing.T) {
	c := NewContainer()

	require.NoError(t, RegisterValue(c, "english", englishGreeter{}))

	_, err := Lookup[*lifecycleService](c, "english")
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestMustPanicsOnMissing(t *testing.T) {
	c := NewContainer()

	assert.Panics(t, func() { Must[greeter](c, "zzz") })
}

func TestInjectUnique(t *testing.T) {
	c := NewContainer()

	require.NoError(t, RegisterValue[greeter](c, "spanish", spanishGreeter{}))

	g, err := Inject[greeter](c)
	require.NoError(t, err)
	assert.Equal(t, "hola", g.Greet())
}

func TestInjectAmbiguous(t *testing.T) {
	c := NewContainer()

	require.NoError(t, RegisterValue[greeter](c, "english", englishGreeter{}))
	require.NoError(t, RegisterValue[greeter](c, "spanish", spanishGreeter{}))

	_, err := Inject[greeter](c)
	assert.True(t, errors.IsBeanAmbiguous(err))
}

func TestMustInjectPanicsOnMissing(t *testing.T) {
	c := NewContainer()

	assert.Panics(t, func() { MustInject[greeter](c) })
}

func TestRegisterTransientTyped(t *testing.T) {
	c := NewContainer()
	calls := 0

	require.NoError(t, RegisterTransient(c, "counter", func(Container) (*lifecycleService, error) {
		calls++
		return &lifecycleService{}, nil
	}))

	first, err := Lookup[*lifecycleService](c, "counter")
	require.NoError(t, err)
	second, err := Lookup[*lifecycleService](c, "counter")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, calls)
}
