package model

// FlatElement is an element with a path breadcrumb instead of children.
type FlatElement struct {
	Class       string `yaml:"class"                  json:"class"`
	Text        string `yaml:"text,omitempty"         json:"text,omitempty"`
	ContentDesc string `yaml:"content-desc,omitempty" json:"content-desc,omitempty"`
	ResourceID  string `yaml:"resource-id,omitempty"  json:"resource-id,omitempty"`
	Bounds      Rect   `yaml:"bounds"                 json:"bounds"`
	Clickable   bool   `yaml:"clickable,omitempty"    json:"clickable,omitempty"`
	Focused     bool   `yaml:"focused,omitempty"      json:"focused,omitempty"`
	Path        string `yaml:"path,omitempty"         json:"path,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list in pre-order.
// Each element gets a path string showing its location in the tree
// using short class names joined with " > ".
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, "", &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, result *[]FlatElement) {
	currentPath := ShortClass(el.Class)
	if parentPath != "" {
		currentPath = parentPath + " > " + currentPath
	}

	*result = append(*result, FlatElement{
		Class:       el.Class,
		Text:        el.Text,
		ContentDesc: el.ContentDesc,
		ResourceID:  el.ResourceID,
		Bounds:      el.Bounds,
		Clickable:   el.Clickable,
		Focused:     el.Focused,
		Path:        currentPath,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}
