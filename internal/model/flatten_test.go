package model

import "testing"

func TestFlattenElements_Basic(t *testing.T) {
	elements := []Element{
		{Class: "android.widget.Button", Text: "OK", Bounds: Rect{0, 0, 100, 30}},
		{Class: "android.widget.TextView", Text: "Hello", Bounds: Rect{0, 30, 100, 50}},
	}
	result := FlattenElements(elements)
	if len(result) != 2 {
		t.Fatalf("expected 2 flat elements, got %d", len(result))
	}
	if result[0].Path != "Button" {
		t.Errorf("expected path 'Button', got %q", result[0].Path)
	}
	if result[1].Path != "TextView" {
		t.Errorf("expected path 'TextView', got %q", result[1].Path)
	}
}

func TestFlattenElements_NestedPath(t *testing.T) {
	elements := []Element{
		{
			Class: "android.widget.FrameLayout",
			Children: []Element{
				{
					Class: "android.widget.LinearLayout",
					Children: []Element{
						{Class: "android.widget.Button", Text: "Back"},
					},
				},
			},
		},
	}
	result := FlattenElements(elements)
	if len(result) != 3 {
		t.Fatalf("expected 3 flat elements, got %d", len(result))
	}
	want := []string{"FrameLayout", "FrameLayout > LinearLayout", "FrameLayout > LinearLayout > Button"}
	for i, w := range want {
		if result[i].Path != w {
			t.Errorf("element %d: expected path %q, got %q", i, w, result[i].Path)
		}
	}
}

func TestFlattenElements_NoChildren(t *testing.T) {
	result := FlattenElements(nil)
	if len(result) != 0 {
		t.Errorf("expected 0 elements for nil input, got %d", len(result))
	}
}

func TestFlattenElements_TraversalOrder(t *testing.T) {
	elements := []Element{
		{
			Text: "1",
			Children: []Element{
				{Text: "2", Children: []Element{{Text: "3"}}},
				{Text: "4"},
			},
		},
	}
	result := FlattenElements(elements)
	if len(result) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(result))
	}
	for i, want := range []string{"1", "2", "3", "4"} {
		if result[i].Text != want {
			t.Errorf("element %d: expected text %q, got %q", i, want, result[i].Text)
		}
	}
}
