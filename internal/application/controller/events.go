package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/garyjia/invoice-portal/internal/domain/entity"
	"github.com/garyjia/invoice-portal/internal/domain/form"
)

// ErrUnknownEvent is returned for event types the page never emits
var ErrUnknownEvent = errors.New("unknown event type")

// EventType is a DOM event name
type EventType string

const (
	EventClick     EventType = "click"
	EventChange    EventType = "change"
	EventInput     EventType = "input"
	EventBlur      EventType = "blur"
	EventDragOver  EventType = "dragover"
	EventDragLeave EventType = "dragleave"
	EventDrop      EventType = "drop"
	EventSubmit    EventType = "submit"
)

// IsValid returns true for the event types the controller understands
func (t EventType) IsValid() bool {
	switch t {
	case EventClick, EventChange, EventInput, EventBlur,
		EventDragOver, EventDragLeave, EventDrop, EventSubmit:
		return true
	}
	return false
}

// Event is one DOM event forwarded from the page.
// Value carries the control's text after the event, Files the selected or dropped files.
type Event struct {
	Type   EventType           `json:"type"`
	Target string              `json:"target"`
	Value  *string             `json:"value,omitempty"`
	Files  []entity.FileHandle `json:"files,omitempty"`
}

type routeKey struct {
	target string
	event  EventType
}

type handlerFunc func(ctx context.Context, ev Event) (*SubmitResult, error)

// Dispatch routes an event to the operation listening on its target.
// Events nobody listens to are accepted silently; they only carry values.
// A non-nil SubmitResult is returned for submit events.
func (c *Controller) Dispatch(ctx context.Context, ev Event) (*SubmitResult, error) {
	if !ev.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	handler, ok := c.routes[routeKey{target: ev.Target, event: ev.Type}]
	if !ok {
		return nil, nil
	}
	return handler(ctx, ev)
}

func (c *Controller) buildRoutes() map[routeKey]handlerFunc {
	routes := make(map[routeKey]handlerFunc)
	on := func(target string, event EventType, fn handlerFunc) {
		if target != "" {
			routes[routeKey{target: target, event: event}] = fn
		}
	}
	do := func(fn func()) handlerFunc {
		return func(context.Context, Event) (*SubmitResult, error) {
			fn()
			return nil, nil
		}
	}

	for _, m := range form.Methods {
		method := m
		on(c.elements.MethodButtons[method], EventClick, func(context.Context, Event) (*SubmitResult, error) {
			return nil, c.SelectMethod(method)
		})
	}

	on(c.elements.ToggleOptionsButton, EventClick, do(c.ToggleAlternativeOptions))

	on(c.elements.XMLFileToggle, EventClick, func(context.Context, Event) (*SubmitResult, error) {
		return nil, c.SelectXMLInputType(form.XMLInputFile)
	})
	on(c.elements.XMLPasteToggle, EventClick, func(context.Context, Event) (*SubmitResult, error) {
		return nil, c.SelectXMLInputType(form.XMLInputPaste)
	})

	for _, s := range form.Slots {
		slot := s
		zone := c.elements.UploadZones[slot]
		on(zone, EventClick, do(func() { c.ClickZone(slot) }))
		on(zone, EventDragOver, do(func() { c.DragOver(slot) }))
		on(zone, EventDragLeave, do(func() { c.DragLeave(slot) }))
		on(zone, EventDrop, func(_ context.Context, ev Event) (*SubmitResult, error) {
			c.Drop(slot, ev.Files)
			return nil, nil
		})
		on(c.elements.FileInputs[slot], EventChange, func(_ context.Context, ev Event) (*SubmitResult, error) {
			c.PickerChanged(slot, ev.Files)
			return nil, nil
		})
	}

	validateUUID := do(func() { c.ValidateUUIDField() })
	on(c.elements.UUIDInput, EventInput, validateUUID)
	on(c.elements.UUIDInput, EventBlur, validateUUID)

	on(c.elements.Form, EventSubmit, func(ctx context.Context, _ Event) (*SubmitResult, error) {
		return c.HandleSubmit(ctx)
	})
	on(c.elements.CancelButton, EventClick, do(c.HandleReset))

	return routes
}
