package hierarchy

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/a11y-bridge/internal/model"
)

// ErrEmpty is returned by Parse for an empty dump, which is what the
// service sends when it is disconnected or serialization failed.
var ErrEmpty = errors.New("empty hierarchy")

type xmlNode struct {
	XMLName     xml.Name  `xml:"node"`
	Class       string    `xml:"class,attr"`
	Package     string    `xml:"package,attr"`
	ContentDesc string    `xml:"content-desc,attr"`
	Text        string    `xml:"text,attr"`
	ResourceID  string    `xml:"resource-id,attr"`
	Bounds      string    `xml:"bounds,attr"`
	Clickable   string    `xml:"clickable,attr"`
	Focused     string    `xml:"focused,attr"`
	Nodes       []xmlNode `xml:"node"`
}

// Parse reads a dump produced by Serialize into an element tree. The dump
// carries no editable flag, so Editable is always false in the result.
func Parse(dump string) (model.Element, error) {
	if strings.TrimSpace(dump) == "" {
		return model.Element{}, ErrEmpty
	}
	var root xmlNode
	if err := xml.Unmarshal([]byte(dump), &root); err != nil {
		return model.Element{}, fmt.Errorf("parse hierarchy: %w", err)
	}
	return root.element()
}

func (n xmlNode) element() (model.Element, error) {
	el := model.Element{
		Class:       n.Class,
		Package:     n.Package,
		ContentDesc: n.ContentDesc,
		Text:        n.Text,
		ResourceID:  n.ResourceID,
		Clickable:   n.Clickable == "true",
		Focused:     n.Focused == "true",
	}
	if n.Bounds != "" {
		r, err := model.ParseRect(n.Bounds)
		if err != nil {
			return model.Element{}, err
		}
		el.Bounds = r
	}
	for _, c := range n.Nodes {
		child, err := c.element()
		if err != nil {
			return model.Element{}, err
		}
		el.Children = append(el.Children, child)
	}
	return el, nil
}
