package shutdown

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	gs       GSInterface
	started  bool
	finished bool
	startErr error
}

func (m *fakeManager) GetName() string { return "fake" }

func (m *fakeManager) Start(gs GSInterface) error {
	m.gs = gs
	return m.startErr
}

func (m *fakeManager) ShutdownStart() error {
	m.started = true
	return nil
}

func (m *fakeManager) ShutdownFinish() error {
	m.finished = true
	return errors.New("finish failed")
}

func TestGracefulShutdown_RunsCallbacks(t *testing.T) {
	gs := New()
	manager := &fakeManager{}
	gs.AddShutdownManager(manager)

	var mu sync.Mutex
	var names []string
	for i := 0; i < 3; i++ {
		gs.AddShutdownCallback(Func(func(name string) error {
			mu.Lock()
			defer mu.Unlock()
			names = append(names, name)
			return nil
		}))
	}

	var reported []error
	gs.SetErrorHandler(ErrorFunc(func(err error) { reported = append(reported, err) }))

	require.NoError(t, gs.Start())
	require.NotNil(t, manager.gs)
	manager.gs.StartShutdown(manager)

	assert.True(t, manager.started)
	assert.True(t, manager.finished)
	assert.Equal(t, []string{"fake", "fake", "fake"}, names)
	require.Len(t, reported, 1)
	assert.EqualError(t, reported[0], "finish failed")
}

func TestGracefulShutdown_OnlyOnce(t *testing.T) {
	gs := New()
	manager := &fakeManager{}
	calls := 0
	gs.AddShutdownCallback(Func(func(string) error {
		calls++
		return nil
	}))

	gs.StartShutdown(manager)
	gs.StartShutdown(manager)

	assert.Equal(t, 1, calls)
}

func TestGracefulShutdown_StartError(t *testing.T) {
	gs := New()
	gs.AddShutdownManager(&fakeManager{startErr: errors.New("no signals")})

	assert.EqualError(t, gs.Start(), "no signals")
}

func TestGracefulShutdown_CallbackErrorsAreReported(t *testing.T) {
	gs := New()
	gs.AddShutdownCallback(Func(func(string) error { return errors.New("close failed") }))

	var reported []error
	gs.SetErrorHandler(ErrorFunc(func(err error) { reported = append(reported, err) }))
	gs.StartShutdown(&fakeManager{})

	assert.Len(t, reported, 2)
}
