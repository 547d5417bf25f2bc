// Package nodetree searches the live accessibility tree.
//
// Every function here follows one ownership rule: the caller keeps ownership
// of the node it passes in, and receives ownership of any node returned.
// Children obtained during a search are recycled before the search moves on,
// on success and error paths alike.
package nodetree

import (
	"github.com/mj1618/a11y-bridge/internal/platform"
)

// Fingerprint returns the node's bounds in "[l,t][r,b]" form, which the
// protocol uses as a node identifier. Fingerprints are not unique and are
// only stable while the layout is.
func Fingerprint(n platform.Node) string {
	return n.BoundsInScreen().ShortString()
}

// FindByFingerprint returns an owned handle to the first node in pre-order
// whose fingerprint equals fp, or nil if there is none.
func FindByFingerprint(root platform.Node, fp string) (platform.Node, error) {
	return find(root, func(n platform.Node) bool { return Fingerprint(n) == fp })
}

// FindNearestEditable returns an owned handle to n itself when it is
// editable, otherwise to its first editable descendant in pre-order.
func FindNearestEditable(n platform.Node) (platform.Node, error) {
	return find(n, platform.Node.IsEditable)
}

// find is a pre-order search returning an owned copy of the first match.
func find(n platform.Node, match func(platform.Node) bool) (platform.Node, error) {
	if n == nil {
		return nil, nil
	}
	if match(n) {
		return n.Obtain(), nil
	}
	for i := 0; i < n.ChildCount(); i++ {
		found, err := searchChild(n, i, match)
		if err != nil || found != nil {
			return found, err
		}
	}
	return nil, nil
}

func searchChild(parent platform.Node, i int, match func(platform.Node) bool) (platform.Node, error) {
	child, err := parent.Child(i)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	defer child.Recycle()
	return find(child, match)
}
