package utils

import (
	"errors"
	"fmt"
	"sync"
)

// ShutdownHooks collects cleanup work to run when the process is
// interrupted. Hooks run in reverse registration order.
type ShutdownHooks struct {
	mu    sync.Mutex
	hooks []namedHook
}

type namedHook struct {
	name string
	fn   func() error
}

var defaultHooks = &ShutdownHooks{}

// OnShutdown registers fn with the process-wide hooks.
func OnShutdown(name string, fn func() error) {
	defaultHooks.Register(name, fn)
}

// RunShutdownHooks runs and clears the process-wide hooks.
func RunShutdownHooks() error {
	return defaultHooks.Run()
}

func (s *ShutdownHooks) Register(name string, fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, namedHook{name: name, fn: fn})
	Verbose("Registered shutdown hook: %s", name)
}

// Run executes every hook even if some fail, then clears the list.
func (s *ShutdownHooks) Run() error {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		Verbose("Running shutdown hook: %s", hook.name)
		if err := hook.fn(); err != nil {
			logger.WithError(err).Warnf("shutdown hook %s failed", hook.name)
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
		}
	}

	return errors.Join(errs...)
}

func (s *ShutdownHooks) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}
