package model

// Element is a detached snapshot of one node in the on-screen UI tree.
// It carries the same attribute schema as the XML hierarchy dump.
type Element struct {
	Class       string    `yaml:"class,omitempty"        json:"class,omitempty"`
	Package     string    `yaml:"package,omitempty"      json:"package,omitempty"`
	ContentDesc string    `yaml:"content-desc,omitempty" json:"content-desc,omitempty"`
	Text        string    `yaml:"text,omitempty"         json:"text,omitempty"`
	ResourceID  string    `yaml:"resource-id,omitempty"  json:"resource-id,omitempty"`
	Bounds      Rect      `yaml:"bounds"                 json:"bounds"`
	Clickable   bool      `yaml:"clickable,omitempty"    json:"clickable,omitempty"`
	Focused     bool      `yaml:"focused,omitempty"      json:"focused,omitempty"`
	Editable    bool      `yaml:"editable,omitempty"     json:"editable,omitempty"`
	Children    []Element `yaml:"children,omitempty"     json:"children,omitempty"`
}

// Count returns the number of elements in the subtree rooted at el.
func (el Element) Count() int {
	n := 1
	for _, c := range el.Children {
		n += c.Count()
	}
	return n
}

// Depth returns the height of the subtree rooted at el (a leaf has depth 1).
func (el Element) Depth() int {
	deepest := 0
	for _, c := range el.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// ShortClass strips the package qualifier from a fully-qualified widget class
// ("android.widget.EditText" -> "EditText").
func ShortClass(class string) string {
	for i := len(class) - 1; i >= 0; i-- {
		if class[i] == '.' {
			return class[i+1:]
		}
	}
	return class
}
