// Package local implements in-process module dispatch. Modules hosted in
// this kernel register a handler under their address; the send path
// invokes it synchronously inside the sender's transaction.
package local

import (
	"context"
	"sync"

	"aos/internal/core/domain/model/envelope"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

// Handler is a hosted module's entrypoint. An error returned here aborts
// the sender's whole transaction, including any fund movement.
type Handler func(ctx context.Context, env *envelope.Envelope) error

// Dispatcher implements LocalDispatcher over an in-process handler table.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
	}
}

// Register binds a handler to the module address. A second registration
// for the same address replaces the first.
func (d *Dispatcher) Register(address kernel.Address, handler Handler) error {
	if err := address.Validate(); err != nil {
		return err
	}
	if handler == nil {
		return errs.NewValueIsRequiredError("handler")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[address.String()] = handler
	return nil
}

// Unregister removes the handler bound to the address, if any.
func (d *Dispatcher) Unregister(address kernel.Address) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handlers, address.String())
}

// Dispatch invokes the module registered under the target address.
func (d *Dispatcher) Dispatch(ctx context.Context, target kernel.Address, env *envelope.Envelope) error {
	if env == nil {
		return errs.NewValueIsRequiredError("envelope")
	}
	if err := env.Validate(); err != nil {
		return err
	}

	d.mu.RLock()
	handler, ok := d.handlers[target.String()]
	d.mu.RUnlock()

	if !ok {
		return errs.NewObjectNotFoundError("module", target.String())
	}

	return handler(ctx, env)
}
