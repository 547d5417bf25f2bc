package platform

import (
	"image"

	"github.com/mj1618/a11y-bridge/internal/model"
)

// Node is a handle to one element of the host's live UI tree.
//
// Handles are owned by whoever obtained them and must be released with
// Recycle exactly once. Child and Obtain each return a new owned handle.
type Node interface {
	ClassName() string
	PackageName() string
	ContentDescription() string
	Text() string
	ViewIDResourceName() string
	BoundsInScreen() model.Rect
	IsClickable() bool
	IsFocused() bool
	IsEditable() bool

	// ChildCount returns the number of children at the time of the call.
	ChildCount() int
	// Child returns the i-th child, or nil if it vanished since ChildCount.
	Child(i int) (Node, error)
	// Obtain returns a new owned handle to the same element.
	Obtain() Node
	// PerformAction runs an accessibility action on the element.
	PerformAction(action Action, args ActionArgs) (bool, error)
	// Recycle releases the handle.
	Recycle()
}

// TreeReader exposes the active window's UI tree.
type TreeReader interface {
	// RootInActiveWindow returns the root of the active window, or nil.
	RootInActiveWindow() (Node, error)
	// FindFocus returns the node holding the given focus kind, or nil.
	FindFocus(kind FocusKind) (Node, error)
}

// GestureInjector dispatches synthetic pointer gestures.
type GestureInjector interface {
	// DispatchGesture submits g for execution and reports whether the host
	// accepted it. cb, if non-nil, is invoked once the stroke completes or
	// is cancelled.
	DispatchGesture(g model.Gesture, cb GestureCallback) bool
	// PerformGlobalAction runs a system-wide action such as back or home.
	PerformGlobalAction(action model.GlobalAction) bool
}

// Screenshotter requests asynchronous screen captures.
type Screenshotter interface {
	// TakeScreenshot requests a capture of the given display. done is
	// invoked exactly once, on a host goroutine.
	TakeScreenshot(display int, done func(Screenshot, error))
}

// Screenshot is a captured bitmap. Release must be called once the image
// has been consumed.
type Screenshot struct {
	Image   image.Image
	Release func()
}

// EventSource delivers lifecycle and UI-change notifications from the host.
type EventSource interface {
	// Events returns the notification stream. It is closed when the host
	// shuts down.
	Events() <-chan Event
}
