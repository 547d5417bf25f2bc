package model

import "testing"

func TestElementKeys_OrdinalPerPath(t *testing.T) {
	keys := ElementKeys([]FlatElement{
		{Path: "FrameLayout"},
		{Path: "FrameLayout > Button"},
		{Path: "FrameLayout > Button"},
	})
	want := []string{"FrameLayout#0", "FrameLayout > Button#0", "FrameLayout > Button#1"}
	for i, w := range want {
		if keys[i] != w {
			t.Errorf("key %d: got %q, want %q", i, keys[i], w)
		}
	}
}

func TestDiffElements_NoChanges(t *testing.T) {
	elements := []FlatElement{
		{Class: "android.widget.Button", Text: "OK", Bounds: Rect{10, 20, 100, 30}, Path: "Button"},
	}
	if changes := DiffElements(elements, elements); len(changes) != 0 {
		t.Errorf("expected no changes, got %d", len(changes))
	}
}

func TestDiffElements_Added(t *testing.T) {
	prev := []FlatElement{
		{Class: "android.widget.Button", Text: "OK", Path: "Button"},
	}
	curr := []FlatElement{
		{Class: "android.widget.Button", Text: "OK", Path: "Button"},
		{Class: "android.widget.Button", Text: "Cancel", Path: "Button"},
	}
	changes := DiffElements(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Type != ChangeAdded {
		t.Errorf("expected added, got %s", changes[0].Type)
	}
	if changes[0].Key != "Button#1" {
		t.Errorf("expected key Button#1, got %s", changes[0].Key)
	}
	if changes[0].Element.Text != "Cancel" {
		t.Errorf("expected Cancel, got %s", changes[0].Element.Text)
	}
}

func TestDiffElements_Removed(t *testing.T) {
	prev := []FlatElement{
		{Class: "android.widget.TextView", Text: "Title", Path: "TextView"},
		{Class: "android.widget.ProgressBar", Text: "Loading...", Path: "ProgressBar"},
	}
	curr := []FlatElement{
		{Class: "android.widget.TextView", Text: "Title", Path: "TextView"},
	}
	changes := DiffElements(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Type != ChangeRemoved {
		t.Errorf("expected removed, got %s", changes[0].Type)
	}
	if changes[0].Text != "Loading..." || changes[0].Class != "android.widget.ProgressBar" {
		t.Errorf("unexpected removed change: %+v", changes[0])
	}
}

func TestDiffElements_Changed(t *testing.T) {
	prev := []FlatElement{
		{Class: "android.widget.EditText", Text: "", Path: "EditText", Bounds: Rect{0, 0, 100, 40}},
	}
	curr := []FlatElement{
		{Class: "android.widget.EditText", Text: "hello", Focused: true, Path: "EditText", Bounds: Rect{0, 0, 100, 40}},
	}
	changes := DiffElements(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	c := changes[0]
	if c.Type != ChangeChanged {
		t.Fatalf("expected changed, got %s", c.Type)
	}
	if got := c.Changes["text"]; got != [2]string{"", "hello"} {
		t.Errorf("text diff: got %v", got)
	}
	if got := c.Changes["focused"]; got != [2]string{"false", "true"} {
		t.Errorf("focused diff: got %v", got)
	}
	if _, ok := c.Changes["bounds"]; ok {
		t.Error("unchanged bounds should not be reported")
	}
}
