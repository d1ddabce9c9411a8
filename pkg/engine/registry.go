package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Driver makes an engine implementation available under a name.
type Driver struct {
	Name string
	// Init performs the process-wide setup the engine needs, such as
	// loading a native library. It is optional and runs at most once.
	Init func() error
	New  Factory
}

// Unavailable is returned when an engine cannot be used in this
// process: it was never registered, or its initialization failed.
type Unavailable struct {
	Name string
	Err  error
}

func (e Unavailable) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("engine %q is not available", e.Name)
	}
	return fmt.Sprintf("engine %q is not available: %s", e.Name, e.Err)
}

func (e Unavailable) Unwrap() error {
	return e.Err
}

type registration struct {
	driver Driver
	once   sync.Once
	err    error
}

var (
	mu      sync.RWMutex
	drivers = make(map[string]*registration)
)

// Register makes d available to Load. It panics if d has no name or
// factory, or if a driver with the same name is already registered.
func Register(d Driver) {
	if d.Name == "" || d.New == nil {
		panic("engine: Register called with an incomplete driver")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := drivers[d.Name]; ok {
		panic(fmt.Sprintf("engine: Register called twice for driver %q", d.Name))
	}
	drivers[d.Name] = &registration{driver: d}
}

// Load initializes the named driver, once per process, and returns its
// factory. Subsequent calls return the outcome of the first
// initialization.
func Load(name string) (Factory, error) {
	mu.RLock()
	r, ok := drivers[name]
	mu.RUnlock()
	if !ok {
		return nil, Unavailable{Name: name}
	}
	r.once.Do(func() {
		if r.driver.Init != nil {
			r.err = r.driver.Init()
		}
		logger := logrus.WithField("engine", name)
		if r.err != nil {
			logger.WithError(r.err).Warn("engine initialization failed")
			return
		}
		logger.Debug("engine loaded")
	})
	if r.err != nil {
		return nil, Unavailable{Name: name, Err: r.err}
	}
	return r.driver.New, nil
}

// Drivers returns the names of the registered drivers, sorted.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
