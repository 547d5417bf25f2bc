package platform

import "fmt"

// Action identifies an accessibility node action.
type Action int

// ActionSetText replaces an editable node's text with ActionArgs.SetText.
const ActionSetText Action = 0x200000

// ActionArgs carries the arguments of a node action.
type ActionArgs struct {
	// SetText is the ACTION_ARGUMENT_SET_TEXT_CHARSEQUENCE argument.
	SetText string
}

// FocusKind selects which focus FindFocus looks for.
type FocusKind int

const (
	FocusInput         FocusKind = 1
	FocusAccessibility FocusKind = 2
)

func (k FocusKind) String() string {
	switch k {
	case FocusInput:
		return "input"
	case FocusAccessibility:
		return "accessibility"
	default:
		return fmt.Sprintf("focus(%d)", int(k))
	}
}

// GestureCallback receives the outcome of a dispatched gesture.
type GestureCallback interface {
	OnCompleted()
	OnCancelled()
}

// EventType classifies host notifications.
type EventType int

const (
	EventConnected EventType = iota
	EventInterrupted
	EventUnbind
	// EventWindowStateChanged carries the new foreground window's class name.
	EventWindowStateChanged
)

func (t EventType) String() string {
	switch t {
	case EventConnected:
		return "connected"
	case EventInterrupted:
		return "interrupted"
	case EventUnbind:
		return "unbind"
	case EventWindowStateChanged:
		return "window-state-changed"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Event is one notification from the host.
type Event struct {
	Type      EventType
	ClassName string
}
