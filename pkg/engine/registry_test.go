package engine

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopFactory(string, ProblemType) (Engine, error) {
	return nil, errors.New("not implemented")
}

func TestLoadUnregistered(t *testing.T) {
	_, err := Load("no-such-engine")
	var unavailable Unavailable
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "no-such-engine", unavailable.Name)
	assert.EqualError(t, err, `engine "no-such-engine" is not available`)
}

func TestLoadRunsInitOnce(t *testing.T) {
	var calls int
	Register(Driver{
		Name: "test-once",
		Init: func() error {
			calls++
			return nil
		},
		New: nopFactory,
	})

	for i := 0; i < 3; i++ {
		f, err := Load("test-once")
		require.NoError(t, err)
		require.NotNil(t, f)
	}
	assert.Equal(t, 1, calls)
	assert.Contains(t, Drivers(), "test-once")
}

func TestLoadReportsInitFailure(t *testing.T) {
	cause := errors.New("libengine.so: cannot open shared object file")
	var calls int
	Register(Driver{
		Name: "test-broken",
		Init: func() error {
			calls++
			return cause
		},
		New: nopFactory,
	})

	for i := 0; i < 2; i++ {
		_, err := Load("test-broken")
		var unavailable Unavailable
		require.True(t, errors.As(err, &unavailable))
		assert.ErrorIs(t, err, cause)
	}
	assert.Equal(t, 1, calls)
}

func TestLoadLogsAtDebugLevel(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	defer logrus.SetLevel(logrus.GetLevel())
	logrus.SetLevel(logrus.InfoLevel)

	Register(Driver{Name: "test-quiet", New: nopFactory})
	_, err := Load("test-quiet")
	require.NoError(t, err)
	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, "engine loaded", entry.Message, "engine loading leaked at level %s", entry.Level)
	}

	logrus.SetLevel(logrus.DebugLevel)
	Register(Driver{Name: "test-verbose", New: nopFactory})
	_, err = Load("test-verbose")
	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "engine loaded", entry.Message)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "test-verbose", entry.Data["engine"])
}

func TestRegisterPanics(t *testing.T) {
	Register(Driver{Name: "test-dup", New: nopFactory})
	assert.Panics(t, func() { Register(Driver{Name: "test-dup", New: nopFactory}) })
	assert.Panics(t, func() { Register(Driver{Name: "test-nameless", New: nil}) })
	assert.Panics(t, func() { Register(Driver{New: nopFactory}) })
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "NOT_SOLVED", NotSolved.String())
	assert.Equal(t, "ResultStatus(42)", ResultStatus(42).String())
	assert.Equal(t, "MIP", MixedIntegerProgramming.String())
}
