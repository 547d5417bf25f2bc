package platform

import "testing"

func TestFocusKind_String(t *testing.T) {
	tests := []struct {
		k    FocusKind
		want string
	}{
		{FocusInput, "input"},
		{FocusAccessibility, "accessibility"},
		{FocusKind(7), "focus(7)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("FocusKind(%d).String() = %q, want %q", int(tt.k), got, tt.want)
		}
	}
}

func TestEventType_String(t *testing.T) {
	tests := []struct {
		e    EventType
		want string
	}{
		{EventConnected, "connected"},
		{EventInterrupted, "interrupted"},
		{EventUnbind, "unbind"},
		{EventWindowStateChanged, "window-state-changed"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestActionSetText_Value(t *testing.T) {
	if ActionSetText != 2097152 {
		t.Errorf("ActionSetText = %d, want 2097152", int(ActionSetText))
	}
}
