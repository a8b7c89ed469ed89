package navigation

import (
	"fmt"

	"github.com/asaskevich/EventBus"
)

// Event bus topics the controller listens on.
const (
	// TopicNavigate carries a navigation request: func(uri string).
	TopicNavigate = "route-navigate"

	// TopicPopState carries a history-pop signal: func(path, query string).
	TopicPopState = "popstate"
)

// Listen subscribes the controller to TopicNavigate and TopicPopState on
// bus. Handlers run synchronously on the publisher's goroutine, so events
// are processed in publish order.
//
// Errors and panics raised while handling an event, including payloads of
// the wrong type or arity, are logged and counted rather than propagated to
// the publisher. EventBus itself still panics on a nil argument in any
// position but the first. Unmount removes the subscriptions.
//
// EventBus holds its lock while synchronous handlers run: a renderer must
// not publish on the same bus from inside Render. Give each controller its
// own bus, since EventBus identifies handlers by function pointer.
func (c *Controller[M]) Listen(bus EventBus.BusSubscriber) error {
	onNavigate := func(args ...any) {
		c.guard(TopicNavigate, func() error {
			v, err := stringArgs(TopicNavigate, args, 1)
			if err != nil {
				return err
			}
			return c.HandleNavigationRequest(v[0])
		})
	}
	onPop := func(args ...any) {
		c.guard(TopicPopState, func() error {
			v, err := stringArgs(TopicPopState, args, 2)
			if err != nil {
				return err
			}
			return c.HandlePopSignal(v[0], v[1])
		})
	}

	if err := bus.Subscribe(TopicNavigate, onNavigate); err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicNavigate, err)
	}
	c.listeners = append(c.listeners, func() { _ = bus.Unsubscribe(TopicNavigate, onNavigate) })

	if err := bus.Subscribe(TopicPopState, onPop); err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicPopState, err)
	}
	c.listeners = append(c.listeners, func() { _ = bus.Unsubscribe(TopicPopState, onPop) })

	return nil
}

// stringArgs checks that an event carries exactly n string arguments.
func stringArgs(topic string, args []any, n int) ([]string, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: got %d arguments, want %d", topic, len(args), n)
	}
	out := make([]string, n)
	for i, a := range args {
		s, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d is %T, want string", topic, i, a)
		}
		out[i] = s
	}
	return out, nil
}

// guard runs fn, logging any error or panic instead of letting it reach
// the host event loop.
func (c *Controller[M]) guard(topic string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			c.metrics.recordListenerError(topic)
			c.logger.Error("navigation listener panicked", "topic", topic, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		c.metrics.recordListenerError(topic)
		c.logger.Error("navigation listener failed", "topic", topic, "error", err)
	}
}
