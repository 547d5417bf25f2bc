// Package hierarchy renders the accessibility tree as an XML dump and reads
// such dumps back.
package hierarchy

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"

	"github.com/mj1618/a11y-bridge/internal/nodetree"
	"github.com/mj1618/a11y-bridge/internal/platform"
)

// Header is the document declaration written before the root node.
const Header = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>`

// MaxDepth bounds the nesting of a dump. Deeper trees fail to serialize.
const MaxDepth = 512

// ErrTooDeep is returned when the tree nests deeper than MaxDepth.
var ErrTooDeep = errors.New("hierarchy exceeds maximum depth")

// Serialize renders the subtree rooted at root as XML, one <node> element
// per node in pre-order. Serialize takes ownership of root: every handle,
// root included, is recycled as soon as its element has been written, and
// all handles are recycled on error. A nil root yields "".
func Serialize(root platform.Node) (string, error) {
	if root == nil {
		return "", nil
	}
	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := xml.NewEncoder(&buf)
	if err := encodeNode(enc, root, 0); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("flush hierarchy: %w", err)
	}
	return buf.String(), nil
}

func encodeNode(enc *xml.Encoder, n platform.Node, depth int) error {
	defer n.Recycle()
	if depth >= MaxDepth {
		return fmt.Errorf("%w (%d)", ErrTooDeep, MaxDepth)
	}

	start := xml.StartElement{Name: xml.Name{Local: "node"}, Attr: nodeAttrs(n)}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for i := 0; i < n.ChildCount(); i++ {
		child, err := n.Child(i)
		if err != nil {
			return fmt.Errorf("child %d of %s: %w", i, nodetree.Fingerprint(n), err)
		}
		if child == nil {
			continue
		}
		if err := encodeNode(enc, child, depth+1); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func nodeAttrs(n platform.Node) []xml.Attr {
	attr := func(name, value string) xml.Attr {
		return xml.Attr{Name: xml.Name{Local: name}, Value: value}
	}
	return []xml.Attr{
		attr("class", n.ClassName()),
		attr("package", n.PackageName()),
		attr("content-desc", n.ContentDescription()),
		attr("text", n.Text()),
		attr("resource-id", n.ViewIDResourceName()),
		attr("bounds", nodetree.Fingerprint(n)),
		attr("clickable", strconv.FormatBool(n.IsClickable())),
		attr("focused", strconv.FormatBool(n.IsFocused())),
	}
}
