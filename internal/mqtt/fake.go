package mqtt

import (
	"github.com/sweeney/led-arbiter/internal/logic"
)

// FakePublisher records published arbitration and system events for test
// assertions.
type FakePublisher struct {
	// Events contains all arbitration events that were published.
	Events []logic.Event

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the arbitration event.
func (f *FakePublisher) Publish(event logic.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	f.Events = append(f.Events, event)

	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// EventTypes returns the types of the recorded arbitration events in order.
func (f *FakePublisher) EventTypes() []logic.EventType {
	var types []logic.EventType
	for _, e := range f.Events {
		types = append(types, e.Type)
	}
	return types
}

// LastEvent returns the most recent arbitration event of type t.
func (f *FakePublisher) LastEvent(t logic.EventType) (logic.Event, bool) {
	for i := len(f.Events) - 1; i >= 0; i-- {
		if f.Events[i].Type == t {
			return f.Events[i], true
		}
	}
	return logic.Event{}, false
}

// SystemEventNames returns the names of the recorded system events in order.
func (f *FakePublisher) SystemEventNames() []string {
	var names []string
	for _, e := range f.SystemEvents {
		names = append(names, e.Event)
	}
	return names
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.Events = nil
	f.Payloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
