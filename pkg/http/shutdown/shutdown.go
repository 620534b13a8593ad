// Package shutdown runs registered callbacks once a shutdown manager, such as
// posixsignal, decides the process should stop.
package shutdown

import (
	"sync"
)

// ShutdownCallback is an interface you have to implement for callbacks.
// OnShutdown will be called when shutdown is requested. The parameter
// is the name of the ShutdownManager that requested shutdown.
type ShutdownCallback interface {
	OnShutdown(string) error
}

// Func is a helper type, so you can easily provide anonymous functions
// as ShutdownCallbacks.
type Func func(string) error

// OnShutdown defines the action needed to run when shutdown triggered.
func (f Func) OnShutdown(shutdownManager string) error {
	return f(shutdownManager)
}

// ShutdownManager is an interface implemented by shutdown managers.
// GetName returns the name of ShutdownManager.
// Start is called to start listening for shutdown requests.
// ShutdownStart is called before the callbacks run, ShutdownFinish after.
type ShutdownManager interface {
	GetName() string
	Start(gs GSInterface) error
	ShutdownStart() error
	ShutdownFinish() error
}

// ErrorHandler is an interface you can pass to SetErrorHandler to
// handle asynchronous errors.
type ErrorHandler interface {
	OnError(err error)
}

// ErrorFunc is a helper type, so you can easily provide anonymous functions
// as ErrorHandlers.
type ErrorFunc func(err error)

// OnError defines the action needed to run when error occurred.
func (f ErrorFunc) OnError(err error) {
	f(err)
}

// GSInterface is an interface implemented by GracefulShutdown,
// that gets passed to ShutdownManager to call StartShutdown when shutdown
// is requested.
type GSInterface interface {
	StartShutdown(sm ShutdownManager)
	ReportError(err error)
	AddShutdownCallback(shutdownCallback ShutdownCallback)
}

// GracefulShutdown is main struct that handles ShutdownCallbacks and
// ShutdownManagers. Initialize it with New.
type GracefulShutdown struct {
	mu                sync.Mutex
	callbacks         []ShutdownCallback
	managers          []ShutdownManager
	errorHandler      ErrorHandler
	shutdownRequested bool
}

// New initializes GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{}
}

// Start calls Start on all added ShutdownManagers. The ShutdownManagers
// start to listen to shutdown requests. Returns an error if any
// ShutdownManagers return an error.
func (gs *GracefulShutdown) Start() error {
	gs.mu.Lock()
	managers := append([]ShutdownManager(nil), gs.managers...)
	gs.mu.Unlock()

	for _, manager := range managers {
		if err := manager.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// AddShutdownManager adds a ShutdownManager that will listen to shutdown requests.
func (gs *GracefulShutdown) AddShutdownManager(manager ShutdownManager) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.managers = append(gs.managers, manager)
}

// AddShutdownCallback adds a ShutdownCallback that will be called when
// shutdown is requested.
func (gs *GracefulShutdown) AddShutdownCallback(shutdownCallback ShutdownCallback) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.callbacks = append(gs.callbacks, shutdownCallback)
}

// SetErrorHandler sets an ErrorHandler that will be called when an error
// is encountered in ShutdownCallback or in ShutdownManager.
func (gs *GracefulShutdown) SetErrorHandler(errorHandler ErrorHandler) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.errorHandler = errorHandler
}

// StartShutdown is called from a ShutdownManager and will initiate shutdown.
// First call ShutdownStart on Shutdownmanager, call all ShutdownCallbacks,
// wait for callbacks to finish and call ShutdownFinish on ShutdownManager.
// Only the first request has an effect.
func (gs *GracefulShutdown) StartShutdown(sm ShutdownManager) {
	gs.mu.Lock()
	if gs.shutdownRequested {
		gs.mu.Unlock()
		return
	}
	gs.shutdownRequested = true
	callbacks := append([]ShutdownCallback(nil), gs.callbacks...)
	gs.mu.Unlock()

	gs.ReportError(sm.ShutdownStart())

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(cb ShutdownCallback) {
			defer wg.Done()
			gs.ReportError(cb.OnShutdown(sm.GetName()))
		}(cb)
	}
	wg.Wait()

	gs.ReportError(sm.ShutdownFinish())
}

// ReportError is a function that can be used to report errors to
// ErrorHandler. It is used in ShutdownManagers.
func (gs *GracefulShutdown) ReportError(err error) {
	if err == nil {
		return
	}
	gs.mu.Lock()
	handler := gs.errorHandler
	gs.mu.Unlock()
	if handler != nil {
		handler.OnError(err)
	}
}
