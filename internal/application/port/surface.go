package port

// Renderer is the visible side of the page. The controller tells it what to
// show; it never asks it for anything.
type Renderer interface {
	// AddClass attaches a CSS class to the element with the given id
	AddClass(id, class string)

	// RemoveClass detaches a CSS class; removing an absent class is a no-op
	RemoveClass(id, class string)

	// SetText replaces the visible text of an element
	SetText(id, text string)

	// SetStyle sets an inline style property; an empty value restores the stylesheet default
	SetStyle(id, property, value string)

	// ClearValue empties an input control, including any selected files
	ClearValue(id string)

	// OpenPicker opens the platform file chooser bound to a file input
	OpenPicker(id string)

	// Acknowledge shows a user-visible notice, e.g. after a submission
	Acknowledge(message string)
}

// InputSurface exposes the current values of the page's text controls
type InputSurface interface {
	// Value returns the current text of an input or textarea
	Value(id string) string
}
